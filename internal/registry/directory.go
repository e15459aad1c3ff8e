package registry

import (
	"context"
	"strings"
	"sync/atomic"
)

// Bank is one read-only bank directory row. A (country, bank code) pair may
// map to several rows when an institution exposes branch BICs; at most one
// row is flagged Primary.
type Bank struct {
	CountryCode  string
	BankCode     string
	Name         string
	ShortName    string
	BIC          string
	ChecksumAlgo string
	Primary      bool
}

// Directory resolves bank codes to directory rows. Implementations must be
// safe for concurrent use; the engines never mutate through it.
//
// FindBanks returns an empty slice, not an error, when the pair is absent.
// Row order within a bank code is an implementation detail - callers must
// not rely on anything beyond "the primary row, if any, is present".
type Directory interface {
	FindBanks(ctx context.Context, countryCode, bankCode string) ([]Bank, error)
	BanksForCountry(ctx context.Context, countryCode string) ([]Bank, error)
	BanksByBIC(ctx context.Context, bic string) ([]Bank, error)
}

// MemoryDirectory is an immutable in-process Directory.
type MemoryDirectory struct {
	byCode    map[string][]Bank
	byCountry map[string][]Bank
	byBIC     map[string][]Bank
}

// NewMemoryDirectory indexes the given rows. Codes are upper-cased.
func NewMemoryDirectory(banks []Bank) *MemoryDirectory {
	d := &MemoryDirectory{
		byCode:    make(map[string][]Bank),
		byCountry: make(map[string][]Bank),
		byBIC:     make(map[string][]Bank),
	}
	for _, b := range banks {
		b.CountryCode = strings.ToUpper(b.CountryCode)
		b.BankCode = strings.ToUpper(b.BankCode)
		b.BIC = strings.ToUpper(b.BIC)
		key := b.CountryCode + ":" + b.BankCode
		d.byCode[key] = append(d.byCode[key], b)
		d.byCountry[b.CountryCode] = append(d.byCountry[b.CountryCode], b)
		if b.BIC != "" {
			d.byBIC[b.BIC] = append(d.byBIC[b.BIC], b)
		}
	}
	return d
}

func (d *MemoryDirectory) FindBanks(_ context.Context, countryCode, bankCode string) ([]Bank, error) {
	key := strings.ToUpper(countryCode) + ":" + strings.ToUpper(bankCode)
	return d.byCode[key], nil
}

func (d *MemoryDirectory) BanksForCountry(_ context.Context, countryCode string) ([]Bank, error) {
	return d.byCountry[strings.ToUpper(countryCode)], nil
}

func (d *MemoryDirectory) BanksByBIC(_ context.Context, bic string) ([]Bank, error) {
	return d.byBIC[strings.ToUpper(bic)], nil
}

// activeDirectory is the process-wide directory. It defaults to the seeded
// in-memory directory and may be swapped once at startup for a
// postgres/redis-backed one (internal/registry/store).
var activeDirectory atomic.Pointer[Directory]

func init() {
	SetDirectory(NewMemoryDirectory(seedBanks))
}

// SetDirectory installs the process-wide bank directory. Call before serving
// traffic; lookups racing a swap see either directory, never a nil one.
func SetDirectory(d Directory) {
	activeDirectory.Store(&d)
}

// ActiveDirectory returns the process-wide bank directory.
func ActiveDirectory() Directory {
	return *activeDirectory.Load()
}

// PrimaryBank picks the row flagged primary, falling back to the first row.
// ok is false when the slice is empty.
func PrimaryBank(banks []Bank) (Bank, bool) {
	if len(banks) == 0 {
		return Bank{}, false
	}
	for _, b := range banks {
		if b.Primary {
			return b, true
		}
	}
	return banks[0], true
}
