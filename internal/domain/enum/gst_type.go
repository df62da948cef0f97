package enum

// GSTType labels how GST is split on an invoice. Intra-state sales split the
// tax into CGST+SGST halves, inter-state sales charge IGST in full.
type GSTType string

const (
	GSTTypeCGSTSGST GSTType = "CGST_SGST"
	GSTTypeIGST     GSTType = "IGST"
)

// IsValid checks if the value is a known GSTType
func (t GSTType) IsValid() bool {
	return t == GSTTypeCGSTSGST || t == GSTTypeIGST
}

func (t GSTType) String() string {
	return string(t)
}
