package faker

import (
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"slices"
	"time"
)

// ErrUnknownMethod is returned by Invoke for a namespace.method pair the
// registry does not contain.
var ErrUnknownMethod = errors.New("unknown faker method")

// Method generates one fake value.
type Method func(f *Faker, args Args) (any, error)

// Faker is a registry of namespace.method data generators. It is safe for
// concurrent use.
type Faker struct {
	rng     *mathrand.Rand
	locale  *Locale
	now     func() time.Time
	methods map[string]map[string]Method
}

// Option configures a Faker.
type Option func(*Faker)

// WithSeed makes output reproducible. Calls made in the same order with the
// same seed produce the same values.
func WithSeed(seed uint64) Option {
	return func(f *Faker) {
		f.rng = mathrand.New(&lockedSource{src: mathrand.NewPCG(seed, 0)})
	}
}

// WithLocale selects the data set for names, addresses and phone numbers.
// Accepts BCP 47 tags and POSIX locale strings such as "de_DE.UTF-8".
// Unsupported locales fall back to English.
func WithLocale(locale string) Option {
	return func(f *Faker) {
		f.locale = lookupLocale(MatchLocale(locale))
	}
}

// WithClock sets the reference time for date methods.
func WithClock(now func() time.Time) Option {
	return func(f *Faker) {
		f.now = now
	}
}

// New creates a Faker with the built-in method registry.
func New(opts ...Option) *Faker {
	f := &Faker{
		locale:  lookupLocale("en"),
		now:     time.Now,
		methods: builtinMethods(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Locale returns the matched locale tag ("en", "de" or "es").
func (f *Faker) Locale() string {
	return f.locale.Tag
}

// HasMethod reports whether namespace.method is registered.
func (f *Faker) HasMethod(namespace, method string) bool {
	_, ok := f.methods[namespace][method]
	return ok
}

// Invoke calls namespace.method with args. Argument problems are reported as
// *ArgumentError.
func (f *Faker) Invoke(namespace, method string, args []any) (any, error) {
	fn, ok := f.methods[namespace][method]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, namespace, method)
	}
	v, err := fn(f, Args(args))
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) && argErr.Method == "" {
			argErr.Method = namespace + "." + method
		}
		return nil, err
	}
	return v, nil
}

// Namespaces lists the registered namespaces in sorted order.
func (f *Faker) Namespaces() []string {
	out := make([]string, 0, len(f.methods))
	for ns := range f.methods {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out
}

// Methods lists the methods of a namespace in sorted order.
func (f *Faker) Methods(namespace string) []string {
	out := make([]string, 0, len(f.methods[namespace]))
	for m := range f.methods[namespace] {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
