package enrichlayer

// CompanyProfile is the provider's company payload. Size arrives as a
// two-element [min, max] array; either bound may be null.
type CompanyProfile struct {
	LinkedinInternalID      *string    `json:"linkedin_internal_id"`
	Name                    string     `json:"name"`
	Description             *string    `json:"description"`
	Website                 *string    `json:"website"`
	Industry                *string    `json:"industry"`
	CompanySize             []*int     `json:"company_size"`
	CompanySizeOnLinkedin   *int       `json:"company_size_on_linkedin"`
	HQ                      *Address   `json:"hq"`
	CompanyType             *string    `json:"company_type"`
	FoundedYear             *int       `json:"founded_year"`
	Tagline                 *string    `json:"tagline"`
	UniversalNameID         *string    `json:"universal_name_id"`
	ProfilePicURL           *string    `json:"profile_pic_url"`
	BackgroundCoverImageURL *string    `json:"background_cover_image_url"`
	Specialities            []string   `json:"specialities"`
	Locations               []Location `json:"locations"`
}

type Address struct {
	Country    *string `json:"country"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
}

type Location struct {
	Country    *string `json:"country"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Line1      *string `json:"line_1"`
	IsHQ       bool    `json:"is_hq"`
}

// SizeMin returns the lower bound of the reported size range.
func (p *CompanyProfile) SizeMin() *int {
	return sizeIndex(p.CompanySize, 0)
}

// SizeMax returns the upper bound of the reported size range.
func (p *CompanyProfile) SizeMax() *int {
	return sizeIndex(p.CompanySize, 1)
}

func sizeIndex(size []*int, index int) *int {
	if index >= len(size) {
		return nil
	}
	return size[index]
}
