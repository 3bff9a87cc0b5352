package faker

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is one localized data set.
type Locale struct {
	Tag string

	FemaleFirstNames []string
	MaleFirstNames   []string
	LastNames        []string
	FemalePrefixes   []string
	MalePrefixes     []string

	Cities       []string
	States       []string
	StreetNames  []string
	Countries    []string
	ZipFormat    string
	PhoneFormats []string

	CompanySuffixes []string
	Departments     []string
	EmailDomains    []string

	streetAddress func(street string, number int) string
}

var supportedTags = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
}

var localeMatcher = language.NewMatcher(supportedTags)

// MatchLocale maps a BCP 47 tag or POSIX locale string ("de_DE.UTF-8") to the
// closest supported locale: "en", "de" or "es". Anything unrecognized is "en".
func MatchLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return "en"
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "en"
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(supportedTags) {
		return "en"
	}
	base, _ := supportedTags[idx].Base()
	return base.String()
}

// SupportedLocales returns the tags of the built-in data sets.
func SupportedLocales() []string {
	return []string{"en", "de", "es"}
}

func lookupLocale(tag string) *Locale {
	switch tag {
	case "de":
		return localeDE
	case "es":
		return localeES
	default:
		return localeEN
	}
}

var localeEN = &Locale{
	Tag:              "en",
	FemaleFirstNames: []string{"Jane", "Alice", "Diana", "Fiona", "Grace", "Hannah", "Olivia", "Emma", "Sophia", "Chloe"},
	MaleFirstNames:   []string{"John", "Bob", "Charlie", "Edward", "George", "Henry", "James", "Liam", "Noah", "Oscar"},
	LastNames:        []string{"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor"},
	FemalePrefixes:   []string{"Mrs.", "Ms.", "Miss", "Dr."},
	MalePrefixes:     []string{"Mr.", "Dr."},
	Cities:           []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Seattle", "Denver", "Boston"},
	States:           []string{"New York", "California", "Illinois", "Texas", "Arizona", "Washington", "Colorado", "Massachusetts"},
	StreetNames:      []string{"Main", "Oak", "Elm", "Park", "Cedar", "Maple", "Pine", "Lake"},
	Countries:        []string{"United States", "Canada", "United Kingdom", "Australia", "Ireland", "New Zealand"},
	ZipFormat:        "#####",
	PhoneFormats:     []string{"+1-###-###-####", "(###) ###-####", "###-###-####"},
	CompanySuffixes:  []string{"Inc", "LLC", "Group", "Corp"},
	Departments:      []string{"Books", "Electronics", "Garden", "Grocery", "Home", "Music", "Outdoors", "Sports", "Toys"},
	EmailDomains:     []string{"example.com", "example.org", "example.net"},
	streetAddress: func(street string, number int) string {
		suffixes := []string{"St", "Ave", "Blvd", "Ln", "Dr", "Rd", "Way"}
		return fmt.Sprintf("%d %s %s", number, street, suffixes[number%len(suffixes)])
	},
}

var localeDE = &Locale{
	Tag:              "de",
	FemaleFirstNames: []string{"Anna", "Lena", "Marie", "Sophie", "Laura", "Julia", "Lea", "Hannah", "Katharina", "Johanna"},
	MaleFirstNames:   []string{"Lukas", "Leon", "Felix", "Jonas", "Paul", "Maximilian", "Tobias", "Niklas", "Florian", "Stefan"},
	LastNames:        []string{"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Hoffmann", "Schulz"},
	FemalePrefixes:   []string{"Frau", "Dr."},
	MalePrefixes:     []string{"Herr", "Dr."},
	Cities:           []string{"Berlin", "Hamburg", "München", "Köln", "Frankfurt am Main", "Stuttgart", "Düsseldorf", "Leipzig"},
	States:           []string{"Bayern", "Berlin", "Hamburg", "Hessen", "Nordrhein-Westfalen", "Sachsen", "Baden-Württemberg", "Niedersachsen"},
	StreetNames:      []string{"Haupt", "Schul", "Garten", "Bahnhof", "Dorf", "Berg", "Linden", "Kirch"},
	Countries:        []string{"Deutschland", "Österreich", "Schweiz", "Frankreich", "Niederlande", "Polen"},
	ZipFormat:        "#####",
	PhoneFormats:     []string{"+49 ### #######", "0### #######", "(0###) ######"},
	CompanySuffixes:  []string{"GmbH", "AG", "KG", "GmbH & Co. KG"},
	Departments:      []string{"Bücher", "Elektronik", "Garten", "Lebensmittel", "Haushalt", "Musik", "Sport", "Spielzeug"},
	EmailDomains:     []string{"example.de", "example.com", "example.org"},
	streetAddress: func(street string, number int) string {
		return fmt.Sprintf("%sstraße %d", street, number)
	},
}

var localeES = &Locale{
	Tag:              "es",
	FemaleFirstNames: []string{"María", "Lucía", "Carmen", "Sofía", "Elena", "Paula", "Laura", "Marta", "Isabel", "Ana"},
	MaleFirstNames:   []string{"Javier", "Carlos", "Pablo", "Alejandro", "Diego", "Miguel", "Sergio", "Antonio", "Manuel", "David"},
	LastNames:        []string{"García", "Fernández", "González", "Rodríguez", "López", "Martínez", "Sánchez", "Pérez", "Gómez", "Martín"},
	FemalePrefixes:   []string{"Sra.", "Srta.", "Dra."},
	MalePrefixes:     []string{"Sr.", "Dr."},
	Cities:           []string{"Madrid", "Barcelona", "Valencia", "Sevilla", "Zaragoza", "Málaga", "Bilbao", "Granada"},
	States:           []string{"Andalucía", "Aragón", "Cataluña", "Galicia", "Madrid", "Navarra", "País Vasco", "Valencia"},
	StreetNames:      []string{"Mayor", "Real", "del Sol", "de la Paz", "Nueva", "del Carmen", "San Juan", "Castilla"},
	Countries:        []string{"España", "México", "Argentina", "Colombia", "Chile", "Perú"},
	ZipFormat:        "#####",
	PhoneFormats:     []string{"+34 ### ### ###", "9## ### ###", "6## ### ###"},
	CompanySuffixes:  []string{"S.A.", "S.L.", "Hermanos", "y Asociados"},
	Departments:      []string{"Libros", "Electrónica", "Jardín", "Alimentación", "Hogar", "Música", "Deportes", "Juguetes"},
	EmailDomains:     []string{"example.es", "example.com", "example.org"},
	streetAddress: func(street string, number int) string {
		return fmt.Sprintf("Calle %s, %d", street, number)
	},
}
