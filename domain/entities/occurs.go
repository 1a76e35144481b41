package entities

import "fmt"

// Unbounded is the maxOccurs value meaning "no upper limit".
const Unbounded = 0

// Occurs is the cardinality constraint of a parameter. The zero value is not
// the default; use NewOccurs or DefaultOccurs.
type Occurs struct {
	minOccurs int
	maxOccurs int
}

// DefaultOccurs returns minOccurs=1, maxOccurs=unbounded.
func DefaultOccurs() Occurs {
	return Occurs{minOccurs: 1, maxOccurs: Unbounded}
}

// NewOccurs builds a validated Occurs.
func NewOccurs(minOccurs, maxOccurs int) (Occurs, error) {
	o := Occurs{minOccurs: minOccurs, maxOccurs: maxOccurs}
	if err := o.Validate(); err != nil {
		return Occurs{}, err
	}
	return o, nil
}

// MinOccurs returns the lower bound.
func (o *Occurs) MinOccurs() int { return o.minOccurs }

// MaxOccurs returns the upper bound, 0 meaning unbounded.
func (o *Occurs) MaxOccurs() int { return o.maxOccurs }

// IsUnbounded reports whether maxOccurs is unbounded.
func (o *Occurs) IsUnbounded() bool { return o.maxOccurs == Unbounded }

// SetMinOccurs parses text into minOccurs. Empty text sets 0. Malformed or
// negative text leaves the field unchanged and returns *MalformedNumberError.
//
// The setters check each bound alone so bounds can be assigned in any order.
// The min/max relation is checked by Validate, which the host runs on every
// decoded tree.
func (o *Occurs) SetMinOccurs(text string) error {
	n, err := parseCount("minOccurs", text, 32)
	if err != nil {
		return err
	}
	o.minOccurs = int(n)
	return nil
}

// SetMaxOccurs parses text into maxOccurs with the same rules as SetMinOccurs.
func (o *Occurs) SetMaxOccurs(text string) error {
	n, err := parseCount("maxOccurs", text, 32)
	if err != nil {
		return err
	}
	o.maxOccurs = int(n)
	return nil
}

// SetMinOccursInt sets minOccurs directly.
func (o *Occurs) SetMinOccursInt(n int) { o.minOccurs = n }

// SetMaxOccursInt sets maxOccurs directly.
func (o *Occurs) SetMaxOccursInt(n int) { o.maxOccurs = n }

// Validate checks both bounds are non-negative and that a bounded maxOccurs
// is not below minOccurs.
func (o *Occurs) Validate() error {
	if o.minOccurs < 0 || o.maxOccurs < 0 {
		return fmt.Errorf("occurs bounds must not be negative (min=%d, max=%d)", o.minOccurs, o.maxOccurs)
	}
	if o.maxOccurs != Unbounded && o.maxOccurs < o.minOccurs {
		return fmt.Errorf("maxOccurs %d is below minOccurs %d", o.maxOccurs, o.minOccurs)
	}
	return nil
}
