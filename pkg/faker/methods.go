package faker

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// builtinMethods returns the registry keyed by namespace, then method.
func builtinMethods() map[string]map[string]Method {
	return map[string]map[string]Method{
		"person": {
			"firstName": personFirstName,
			"lastName":  func(f *Faker, _ Args) (any, error) { return f.pick(f.locale.LastNames), nil },
			"fullName":  personFullName,
			"prefix":    personPrefix,
			"sex":       func(f *Faker, _ Args) (any, error) { return f.sex(), nil },
			"jobTitle": func(f *Faker, _ Args) (any, error) {
				return f.pick(jobLevels) + " " + f.pick(jobFields) + " " + f.pick(jobRoles), nil
			},
		},
		"internet": {
			"email":      internetEmail,
			"userName":   internetUserName,
			"domainName": func(f *Faker, _ Args) (any, error) { return f.domainName(), nil },
			"url":        func(f *Faker, _ Args) (any, error) { return "https://" + f.domainName(), nil },
			"ipv4":       func(f *Faker, _ Args) (any, error) { return f.ipv4(), nil },
			"ipv6":       func(f *Faker, _ Args) (any, error) { return f.ipv6(), nil },
			"mac":        func(f *Faker, _ Args) (any, error) { return f.mac(), nil },
			"userAgent":  func(f *Faker, _ Args) (any, error) { return f.pick(userAgents), nil },
			"password":   internetPassword,
		},
		"phone": {
			"number": func(f *Faker, _ Args) (any, error) { return f.pattern(f.pick(f.locale.PhoneFormats)), nil },
		},
		"location": {
			"streetAddress": func(f *Faker, _ Args) (any, error) {
				return f.locale.streetAddress(f.pick(f.locale.StreetNames), f.between(1, 9999)), nil
			},
			"city":        func(f *Faker, _ Args) (any, error) { return f.pick(f.locale.Cities), nil },
			"state":       func(f *Faker, _ Args) (any, error) { return f.pick(f.locale.States), nil },
			"zipCode":     func(f *Faker, _ Args) (any, error) { return f.pattern(f.locale.ZipFormat), nil },
			"country":     func(f *Faker, _ Args) (any, error) { return f.pick(f.locale.Countries), nil },
			"countryCode": locationCountryCode,
			"latitude":    func(f *Faker, _ Args) (any, error) { return round(f.float64()*180-90, 4), nil },
			"longitude":   func(f *Faker, _ Args) (any, error) { return round(f.float64()*360-180, 4), nil },
		},
		"company": {
			"name": func(f *Faker, _ Args) (any, error) {
				return f.pick(companyStems) + " " + f.pick(f.locale.CompanySuffixes), nil
			},
		},
		"commerce": {
			"productName": func(f *Faker, _ Args) (any, error) {
				return f.pick(productAdjectives) + " " + f.pick(productMaterials) + " " + f.pick(productNouns), nil
			},
			"price":      commercePrice,
			"department": func(f *Faker, _ Args) (any, error) { return f.pick(f.locale.Departments), nil },
		},
		"finance": {
			"amount":           commercePrice,
			"currencyCode":     func(f *Faker, _ Args) (any, error) { return f.pick(currencyCodes), nil },
			"creditCardNumber": func(f *Faker, _ Args) (any, error) { return f.creditCard(), nil },
			"iban":             func(f *Faker, _ Args) (any, error) { return f.iban(), nil },
			"accountNumber": func(f *Faker, a Args) (any, error) {
				n, err := a.Count("length", 8)
				if err != nil {
					return nil, err
				}
				return f.chars(digitChars, n), nil
			},
		},
		"number": {
			"int":   numberInt,
			"float": numberFloat,
		},
		"string": {
			"uuid":         func(f *Faker, _ Args) (any, error) { return f.uuid(), nil },
			"alpha":        charsMethod(alphaChars),
			"alphanumeric": charsMethod(alphanumericChars),
			"numeric":      charsMethod(digitChars),
		},
		"datatype": {
			"boolean": func(f *Faker, _ Args) (any, error) { return f.IntN(2) == 1, nil },
		},
		"date": {
			"past":    dateMethod("years", -1, 365*24*time.Hour),
			"future":  dateMethod("years", 1, 365*24*time.Hour),
			"recent":  dateMethod("days", -1, 24*time.Hour),
			"soon":    dateMethod("days", 1, 24*time.Hour),
			"anytime": dateAnytime,
		},
		"lorem": {
			"word": func(f *Faker, _ Args) (any, error) { return f.pick(loremWords), nil },
			"words": func(f *Faker, a Args) (any, error) {
				n, err := a.Count("count", 3)
				if err != nil {
					return nil, err
				}
				return strings.Join(f.words(n), " "), nil
			},
			"sentence": func(f *Faker, a Args) (any, error) {
				n, err := a.Count("wordCount", f.between(3, 10))
				if err != nil {
					return nil, err
				}
				return f.sentence(n), nil
			},
			"paragraph": loremParagraph,
			"slug": func(f *Faker, a Args) (any, error) {
				n, err := a.Count("count", 3)
				if err != nil {
					return nil, err
				}
				return strings.Join(f.words(n), "-"), nil
			},
		},
		"color": {
			"human": func(f *Faker, _ Args) (any, error) { return f.pick(colorNames), nil },
			"rgb": func(f *Faker, _ Args) (any, error) {
				return fmt.Sprintf("#%02x%02x%02x", f.IntN(256), f.IntN(256), f.IntN(256)), nil
			},
		},
		"system": {
			"mimeType": func(f *Faker, _ Args) (any, error) { return f.pick(mimeTypes), nil },
			"fileExt":  func(f *Faker, _ Args) (any, error) { return f.pick(fileExtensions), nil },
			"fileName": func(f *Faker, _ Args) (any, error) {
				return strings.Join(f.words(2), "_") + "." + f.pick(fileExtensions), nil
			},
		},
		"helpers": {
			"arrayElement": helpersArrayElement,
		},
	}
}

// =============================================================================
// Person and internet
// =============================================================================

func (f *Faker) sex() string {
	if f.IntN(2) == 0 {
		return "female"
	}
	return "male"
}

func (f *Faker) firstName(sex string) string {
	switch sex {
	case "female":
		return f.pick(f.locale.FemaleFirstNames)
	case "male":
		return f.pick(f.locale.MaleFirstNames)
	default:
		return f.firstName(f.sex())
	}
}

func personFirstName(f *Faker, a Args) (any, error) {
	sex, err := sexArg(a)
	if err != nil {
		return nil, err
	}
	return f.firstName(sex), nil
}

func personFullName(f *Faker, a Args) (any, error) {
	sex, err := sexArg(a)
	if err != nil {
		return nil, err
	}
	return f.firstName(sex) + " " + f.pick(f.locale.LastNames), nil
}

func personPrefix(f *Faker, a Args) (any, error) {
	sex, err := sexArg(a)
	if err != nil {
		return nil, err
	}
	if sex == "" {
		sex = f.sex()
	}
	if sex == "female" {
		return f.pick(f.locale.FemalePrefixes), nil
	}
	return f.pick(f.locale.MalePrefixes), nil
}

func sexArg(a Args) (string, error) {
	var sex string
	var err error
	if opts, ok := a.Options(); ok {
		sex, err = Args{opts["sex"]}.String(0, "")
	} else {
		sex, err = a.String(0, "")
	}
	if err != nil {
		return "", err
	}
	if sex != "" && sex != "female" && sex != "male" {
		return "", &ArgumentError{Index: 0, Reason: fmt.Sprintf("sex must be \"female\" or \"male\", got %q", sex)}
	}
	return sex, nil
}

func (f *Faker) domainName() string {
	return slug(f.pick(companyStems)) + "." + f.pick(topLevelDomains)
}

func (f *Faker) userName(first, last string) string {
	first, last = slug(first), slug(last)
	switch f.IntN(3) {
	case 0:
		return first + "." + last
	case 1:
		return first + "_" + last + strconv.Itoa(f.IntN(100))
	default:
		return first + strconv.Itoa(f.between(1, 999))
	}
}

// nameArgs reads optional firstName and lastName, positionally or as options.
func (f *Faker) nameArgs(a Args) (string, string, error) {
	var first, last string
	var err error
	if opts, ok := a.Options(); ok {
		if first, err = (Args{opts["firstName"]}).String(0, ""); err != nil {
			return "", "", err
		}
		if last, err = (Args{opts["lastName"]}).String(0, ""); err != nil {
			return "", "", err
		}
	} else {
		if first, err = a.String(0, ""); err != nil {
			return "", "", err
		}
		if last, err = a.String(1, ""); err != nil {
			return "", "", err
		}
	}
	if first == "" {
		first = f.firstName("")
	}
	if last == "" {
		last = f.pick(f.locale.LastNames)
	}
	return first, last, nil
}

func internetEmail(f *Faker, a Args) (any, error) {
	first, last, err := f.nameArgs(a)
	if err != nil {
		return nil, err
	}
	return f.userName(first, last) + "@" + f.pick(f.locale.EmailDomains), nil
}

func internetUserName(f *Faker, a Args) (any, error) {
	first, last, err := f.nameArgs(a)
	if err != nil {
		return nil, err
	}
	return f.userName(first, last), nil
}

func internetPassword(f *Faker, a Args) (any, error) {
	n, err := a.Count("length", 15)
	if err != nil {
		return nil, err
	}
	return f.chars(alphanumericChars+"ABCDEFGHIJKLMNOPQRSTUVWXYZ", n), nil
}

var countryCodes = map[string][]string{
	"en": {"US", "CA", "GB", "AU", "IE", "NZ"},
	"de": {"DE", "AT", "CH", "FR", "NL", "PL"},
	"es": {"ES", "MX", "AR", "CO", "CL", "PE"},
}

func locationCountryCode(f *Faker, _ Args) (any, error) {
	return f.pick(countryCodes[f.locale.Tag]), nil
}

// =============================================================================
// Numbers and strings
// =============================================================================

func numberInt(f *Faker, a Args) (any, error) {
	lo, hi, err := a.IntRange(0, 99999)
	if err != nil {
		return nil, err
	}
	return f.between(lo, hi), nil
}

func numberFloat(f *Faker, a Args) (any, error) {
	lo, hi, digits, err := a.FloatRange(0, 1, 2)
	if err != nil {
		return nil, err
	}
	return round(lo+f.float64()*(hi-lo), digits), nil
}

// commercePrice formats an amount with a fixed number of decimals, as a string.
func commercePrice(f *Faker, a Args) (any, error) {
	var (
		lo, hi float64
		digits int
		err    error
	)
	if opts, ok := a.Options(); ok {
		if _, has := opts["dec"]; has {
			opts = map[string]any{"min": opts["min"], "max": opts["max"], "fractionDigits": opts["dec"]}
			for k, v := range opts {
				if v == nil {
					delete(opts, k)
				}
			}
		}
		lo, hi, digits, err = Args{opts}.FloatRange(1, 1000, 2)
	} else {
		lo, hi, digits, err = a.FloatRange(1, 1000, 2)
	}
	if err != nil {
		return nil, err
	}
	return strconv.FormatFloat(round(lo+f.float64()*(hi-lo), digits), 'f', digits, 64), nil
}

func charsMethod(set string) Method {
	return func(f *Faker, a Args) (any, error) {
		n, err := a.Count("length", 1)
		if err != nil {
			return nil, err
		}
		return f.chars(set, n), nil
	}
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// =============================================================================
// Dates
// =============================================================================

// dateMethod returns a method producing an RFC 3339 timestamp within span
// units (years or days) before (dir < 0) or after the reference time.
func dateMethod(key string, dir int, unit time.Duration) Method {
	return func(f *Faker, a Args) (any, error) {
		n, err := a.Count(key, 1)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			n = 1
		}
		span := time.Duration(n) * unit
		offset := time.Duration(f.float64() * float64(span))
		if offset == 0 {
			offset = time.Second
		}
		return f.now().UTC().Add(time.Duration(dir) * offset).Format(time.RFC3339), nil
	}
}

func dateAnytime(f *Faker, _ Args) (any, error) {
	span := 10 * 365 * 24 * time.Hour
	offset := time.Duration((f.float64()*2 - 1) * float64(span))
	return f.now().UTC().Add(offset).Format(time.RFC3339), nil
}

// =============================================================================
// Lorem and helpers
// =============================================================================

func loremParagraph(f *Faker, a Args) (any, error) {
	n, err := a.Count("sentenceCount", 3)
	if err != nil {
		return nil, err
	}
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = f.sentence(f.between(3, 10))
	}
	return strings.Join(sentences, " "), nil
}

func helpersArrayElement(f *Faker, a Args) (any, error) {
	var list any
	if opts, ok := a.Options(); ok {
		list = opts["array"]
	} else if len(a) > 0 {
		list = a[0]
	}
	items, ok := list.([]any)
	if !ok {
		return nil, &ArgumentError{Index: 0, Reason: fmt.Sprintf("expected an array, got %T", list)}
	}
	if len(items) == 0 {
		return nil, &ArgumentError{Index: 0, Reason: "array is empty"}
	}
	return items[f.IntN(len(items))], nil
}
