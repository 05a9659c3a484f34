// Package refdata supplies the static lists consumed by select inputs in the
// application form.
package refdata

// Countries is the nationality / country-of-birth / address country list.
var Countries = []string{
	"Afghanistan", "Albania", "Algeria", "Argentina", "Australia", "Austria",
	"Bangladesh", "Belgium", "Brazil", "Bulgaria", "Cameroon", "Canada", "Chile",
	"China", "Colombia", "Croatia", "Cyprus", "Czech Republic", "Denmark", "Egypt",
	"Estonia", "Ethiopia", "Finland", "France", "Germany", "Ghana", "Greece",
	"Hungary", "India", "Indonesia", "Iran", "Iraq", "Ireland", "Italy", "Japan",
	"Jordan", "Kenya", "Kuwait", "Latvia", "Lebanon", "Lithuania", "Malaysia",
	"Mexico", "Morocco", "Nepal", "Netherlands", "New Zealand", "Nigeria", "Norway",
	"Oman", "Pakistan", "Philippines", "Poland", "Portugal", "Qatar", "Romania",
	"Saudi Arabia", "Singapore", "Slovakia", "Slovenia", "South Africa",
	"South Korea", "Spain", "Sri Lanka", "Sweden", "Switzerland", "Taiwan",
	"Tanzania", "Thailand", "Tunisia", "Turkey", "Uganda", "Ukraine",
	"United Arab Emirates", "United Kingdom", "United States", "Uzbekistan",
	"Vietnam", "Zambia", "Zimbabwe",
}

// DestinationCountries is the subset offered as study destinations.
var DestinationCountries = []string{
	"United Kingdom", "United States", "Canada", "Australia", "New Zealand",
	"Ireland", "Germany", "Netherlands", "France", "Sweden", "Denmark", "Malaysia",
}

// StudyLevels covers both completed qualifications and the intended level of study.
var StudyLevels = []string{
	"Secondary / High School",
	"Foundation",
	"Diploma",
	"Undergraduate",
	"Postgraduate",
	"Doctorate",
}

// GenderOptions is the gender select list.
var GenderOptions = []string{
	"Male", "Female", "Non-binary", "Prefer not to say",
}

// VisaOptions is the "needs a visa to stay" multi-select.
var VisaOptions = []string{"United Kingdom", "None", "Other"}

// IsDestinationCountry reports whether a value is one of the offered destinations.
func IsDestinationCountry(value string) bool {
	for _, c := range DestinationCountries {
		if c == value {
			return true
		}
	}
	return false
}
