package entities

// Cosmetic is a registered cosmetic product record with its bilingual names
// and category taxonomy.
type Cosmetic struct {
	ID                  string `json:"id"`
	BrandName           string `json:"brandName"`
	SpecificName        string `json:"specificName"`
	SpecificNameAr      string `json:"specificNameAr"`
	FirstSubCategoryEn  string `json:"firstSubCategoryEn"`
	FirstSubCategoryAr  string `json:"firstSubCategoryAr"`
	SecondSubCategoryEn string `json:"secondSubCategoryEn"`
	SecondSubCategoryAr string `json:"secondSubCategoryAr"`
	ManufactureName     string `json:"manufactureName"`
	ManufactureCountry  string `json:"manufactureCountry"`
	Ingredients         string `json:"ingredients"`
	Highlights          string `json:"highlights"`
}
