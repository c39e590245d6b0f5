package domain

// CropTypes is the closed set of item names selectable in listings and
// match filters.
var CropTypes = []string{
	"Wheat",
	"Rice",
	"Corn",
	"Sugarcane",
	"Cotton",
	"Soybean",
	"Potato",
	"Onion",
	"Tomato",
	"Millet",
}

// Locations is the closed set of region strings.
var Locations = []string{
	"Punjab",
	"Haryana",
	"Uttar Pradesh",
	"Madhya Pradesh",
	"Maharashtra",
	"Gujarat",
	"Karnataka",
	"Tamil Nadu",
	"West Bengal",
	"Bihar",
}

// Languages is the closed set of display language tags a session may select.
var Languages = []string{"en", "hi", "mr", "bn", "ta", "te", "kn", "gu", "pa", "ml"}

// ValidLocation reports whether the region is in the closed set.
func ValidLocation(location string) bool {
	return contains(Locations, location)
}

// ValidLanguage reports whether the language tag is in the closed set.
func ValidLanguage(lang string) bool {
	return contains(Languages, lang)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
