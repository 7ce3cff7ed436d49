package models

// Category is one label from the fixed, closed set classifying an expense's
// purpose. Every classification result is one of these labels; unmatched input
// yields CategoryOther.
type Category string

// The closed category set. Declaration order matters: the keyword matcher
// breaks score ties in favor of the category that appears first here.
const (
	CategoryGroceries     Category = "Groceries"
	CategoryDining        Category = "Dining"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryShopping      Category = "Shopping"
	CategoryEducation     Category = "Education"
	CategoryUtilities     Category = "Utilities"
	CategoryInsurance     Category = "Insurance"
	CategoryInvestment    Category = "Investment"
	CategoryOther         Category = "Other"
)

// AllCategories lists the closed set in declaration order.
var AllCategories = []Category{
	CategoryGroceries,
	CategoryDining,
	CategoryTransport,
	CategoryHousing,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryShopping,
	CategoryEducation,
	CategoryUtilities,
	CategoryInsurance,
	CategoryInvestment,
	CategoryOther,
}

// IsValidCategory reports whether name is a member of the closed set.
func IsValidCategory(name string) bool {
	for _, c := range AllCategories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// CategoryConfig is one entry of the keyword table: a category name and the
// ordered list of lowercase substrings that map free text onto it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the structure of the optional categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
