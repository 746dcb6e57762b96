package models

// CategoryRule is one required (category, subcategory) slot of the catalog.
type CategoryRule struct {
	Category    string
	Subcategory string
}

// Labels derived from a category's slots.
const (
	LabelApproved  = "Approved"
	LabelSubmitted = "Submitted"
)

// SubcategoryStatus tells whether a required slot has been satisfied.
type SubcategoryStatus struct {
	Name     string `json:"name"`
	Uploaded bool   `json:"uploaded"`
}

// CategoryStatus is one row of a completeness report.
type CategoryStatus struct {
	Category      string              `json:"category"`
	Subcategories []SubcategoryStatus `json:"subcategories"`
}

// Complete reports whether every slot is uploaded. A category without
// slots can never be satisfied.
func (c CategoryStatus) Complete() bool {
	if len(c.Subcategories) == 0 {
		return false
	}
	for _, s := range c.Subcategories {
		if !s.Uploaded {
			return false
		}
	}
	return true
}

// Label returns LabelApproved for complete categories, LabelSubmitted otherwise.
func (c CategoryStatus) Label() string {
	if c.Complete() {
		return LabelApproved
	}
	return LabelSubmitted
}
