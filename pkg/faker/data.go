// Copyright 2025 Mockd LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package faker

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// Internet
// =============================================================================

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
}

var topLevelDomains = []string{"com", "net", "org", "io", "dev", "info"}

// =============================================================================
// Finance
// =============================================================================

var currencyCodes = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY",
	"SEK", "NZD", "MXN", "SGD", "HKD", "NOK", "KRW", "TRY",
	"INR", "BRL", "ZAR",
}

type ibanFormat struct {
	country    string
	length     int
	bankPrefix string
}

var ibanFormats = []ibanFormat{
	{"GB", 22, "WEST"},
	{"DE", 22, "DEUT"},
	{"FR", 27, "BNPA"},
	{"ES", 24, "BBVA"},
	{"IT", 27, "UCRI"},
	{"NL", 18, "ABNA"},
}

// =============================================================================
// Commerce and company
// =============================================================================

var productAdjectives = []string{
	"Rustic", "Elegant", "Handcrafted", "Refined", "Sleek",
	"Gorgeous", "Practical", "Modern", "Vintage", "Premium",
	"Luxurious", "Compact", "Ergonomic", "Lightweight", "Durable",
}

var productMaterials = []string{
	"Steel", "Wooden", "Granite", "Rubber", "Cotton",
	"Silk", "Leather", "Bamboo", "Bronze", "Copper",
	"Ceramic", "Plastic", "Glass", "Marble", "Titanium",
}

var productNouns = []string{
	"Chair", "Table", "Lamp", "Keyboard", "Mouse",
	"Backpack", "Watch", "Wallet", "Headphones", "Speaker",
	"Notebook", "Pen", "Mug", "Bottle", "Gloves",
}

var companyStems = []string{
	"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne",
	"Cyberdyne", "Tyrell", "Hooli", "Vandelay", "Wonka", "Soylent",
}

var colorNames = []string{
	"red", "blue", "green", "yellow", "purple", "orange",
	"crimson", "azure", "emerald", "ivory", "coral", "indigo",
	"amber", "jade", "scarlet", "turquoise", "lavender", "maroon",
	"teal", "orchid", "cyan", "magenta", "gold", "silver",
}

// =============================================================================
// Person
// =============================================================================

var jobLevels = []string{"Senior", "Junior", "Lead", "Principal", "Staff"}

var jobFields = []string{
	"Software", "Data", "Product", "Marketing", "Sales",
	"Operations", "Security", "Infrastructure", "Quality", "Research",
}

var jobRoles = []string{
	"Engineer", "Analyst", "Manager", "Designer", "Architect",
	"Consultant", "Developer", "Specialist", "Coordinator", "Strategist",
}

// =============================================================================
// System
// =============================================================================

var mimeTypes = []string{
	"application/json", "application/xml", "application/pdf",
	"application/zip", "application/gzip", "application/octet-stream",
	"text/html", "text/plain", "text/css", "text/csv",
	"image/png", "image/jpeg", "image/gif", "image/svg+xml", "image/webp",
	"audio/mpeg", "audio/wav", "video/mp4", "video/webm",
}

var fileExtensions = []string{
	"pdf", "jpg", "png", "gif", "doc", "docx",
	"xls", "xlsx", "csv", "txt", "html", "css",
	"js", "json", "xml", "zip", "tar", "gz",
	"mp3", "mp4", "svg", "md", "yaml", "toml", "log",
}

// =============================================================================
// Lorem
// =============================================================================

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
	"consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
	"occaecat", "cupidatat", "non", "proident", "sunt", "culpa", "qui", "officia",
	"deserunt", "mollit", "anim", "id", "est", "laborum",
}

const (
	alphaChars        = "abcdefghijklmnopqrstuvwxyz"
	digitChars        = "0123456789"
	alphanumericChars = alphaChars + digitChars
)

// =============================================================================
// Generators
// =============================================================================

func (f *Faker) ipv4() string {
	return fmt.Sprintf("%d.%d.%d.%d", f.IntN(256), f.IntN(256), f.IntN(256), f.IntN(256))
}

func (f *Faker) ipv6() string {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", f.IntN(65536))
	}
	return strings.Join(groups, ":")
}

func (f *Faker) mac() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		f.IntN(256), f.IntN(256), f.IntN(256),
		f.IntN(256), f.IntN(256), f.IntN(256))
}

// creditCard generates a Luhn-valid 16-digit Visa-like number.
func (f *Faker) creditCard() string {
	digits := make([]int, 16)
	digits[0] = 4
	for i := 1; i < 15; i++ {
		digits[i] = f.IntN(10)
	}

	// In a 16-digit number the digits at even indexes sit at odd positions
	// from the right and are doubled.
	sum := 0
	for i := 0; i < 15; i++ {
		d := digits[i]
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	digits[15] = (10 - (sum % 10)) % 10

	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	return sb.String()
}

func (f *Faker) iban() string {
	format := ibanFormats[f.IntN(len(ibanFormats))]
	var sb strings.Builder
	sb.WriteString(format.country)
	fmt.Fprintf(&sb, "%02d", f.IntN(90)+10)
	sb.WriteString(format.bankPrefix)
	remaining := format.length - sb.Len()
	sb.WriteString(f.chars(digitChars, remaining))
	return sb.String()
}

// chars returns n characters drawn from set.
func (f *Faker) chars(set string, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = set[f.IntN(len(set))]
	}
	return string(b)
}

// pattern replaces every '#' in format with a random digit.
func (f *Faker) pattern(format string) string {
	var sb strings.Builder
	for _, r := range format {
		if r == '#' {
			sb.WriteByte(byte('0' + f.IntN(10)))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (f *Faker) words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = f.pick(loremWords)
	}
	return out
}

func (f *Faker) sentence(n int) string {
	if n <= 0 {
		return ""
	}
	w := f.words(n)
	w[0] = capitalize(w[0])
	return strings.Join(w, " ") + "."
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// asciiFold strips diacritics so localized names can be used in emails and URLs.
func asciiFold(s string) string {
	s = strings.NewReplacer("ß", "ss", "ä", "ae", "ö", "oe", "ü", "ue", "Ä", "Ae", "Ö", "Oe", "Ü", "Ue").Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// slug lowercases s and keeps only ASCII letters and digits.
func slug(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(asciiFold(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
