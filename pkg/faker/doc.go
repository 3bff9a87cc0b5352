// Package faker generates realistic fake data for mock responses.
//
// Generators are addressed as namespace.method, following the faker.js naming
// that x-faker directives in OpenAPI documents use:
//
//	f := faker.New(faker.WithSeed(42), faker.WithLocale("de_DE.UTF-8"))
//	name, _ := f.Invoke("person", "firstName", nil)
//	n, _ := f.Invoke("number", "int", []any{1, 10})
//	s, _ := f.ExpandTemplate("{{person.firstName}} <{{internet.email}}>")
//
// # Namespaces
//
//	person     firstName, lastName, fullName, prefix, sex, jobTitle
//	internet   email, userName, domainName, url, ipv4, ipv6, mac, userAgent, password
//	phone      number
//	location   streetAddress, city, state, zipCode, country, countryCode, latitude, longitude
//	company    name
//	commerce   productName, price, department
//	finance    amount, currencyCode, creditCardNumber, iban, accountNumber
//	number     int, float
//	string     uuid, alpha, alphanumeric, numeric
//	datatype   boolean
//	date       past, future, recent, soon, anytime
//	lorem      word, words, sentence, paragraph, slug
//	color      human, rgb
//	system     mimeType, fileExt, fileName
//	helpers    arrayElement
//
// Methods accept positional arguments or a single options object. Without
// WithSeed the package-level math/rand/v2 source is used.
package faker
