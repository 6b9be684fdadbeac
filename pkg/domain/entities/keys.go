package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// CorrectionKey identifies a single (distributor, office, planning day)
// slot for correction-cost coefficients and caps. Tier is not part of the
// key: K and R^max are defined per (d,b,t), summed across tiers.
type CorrectionKey struct {
	Distributor DistributorID
	Office      OfficeID
	Day         int
}

// MarshalText renders CorrectionKey as "distributor|office|day" so it can
// be used as a JSON object key (encoding/json only accepts string-keyed
// maps unless the key type implements encoding.TextMarshaler).
func (k CorrectionKey) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%s|%s|%d", k.Distributor, k.Office, k.Day)), nil
}

// UnmarshalText parses the format MarshalText produces.
func (k *CorrectionKey) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), "|")
	if len(parts) != 3 {
		return fmt.Errorf("invalid CorrectionKey %q", text)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("invalid CorrectionKey %q: %w", text, err)
	}
	*k = CorrectionKey{Distributor: DistributorID(parts[0]), Office: OfficeID(parts[1]), Day: day}
	return nil
}

// OrderKey identifies a single (distributor, office, planning day, tier)
// slot, the compound key the builder's dense arrays are addressed by and
// the sparse maps at the persistence boundary are keyed on.
type OrderKey struct {
	Distributor DistributorID
	Office      OfficeID
	Day         int
	Tier        int
}

// MarshalText renders OrderKey as "distributor|office|day|tier".
func (k OrderKey) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%s|%s|%d|%d", k.Distributor, k.Office, k.Day, k.Tier)), nil
}

// UnmarshalText parses the format MarshalText produces.
func (k *OrderKey) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), "|")
	if len(parts) != 4 {
		return fmt.Errorf("invalid OrderKey %q", text)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("invalid OrderKey %q: %w", text, err)
	}
	tier, err := strconv.Atoi(parts[3])
	if err != nil {
		return fmt.Errorf("invalid OrderKey %q: %w", text, err)
	}
	*k = OrderKey{Distributor: DistributorID(parts[0]), Office: OfficeID(parts[1]), Day: day, Tier: tier}
	return nil
}
