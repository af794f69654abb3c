package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	orderIDPrefix  = "ORDER"
	sequenceDigits = 4
	maxSequence    = 9999
)

var (
	ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError("OrderID must be created via NewOrderID or ParseOrderID")

	orderIDPattern = regexp.MustCompile(`^ORDER(\d+)(\d{4})$`)
)

// OrderID is the identity of an order: "ORDER", the creation instant in epoch
// milliseconds and a four digit sequence number.
//
//	ORDER17131234567890007
//	     └─── millis ───┘└seq┘
//
// The sequence is what lets placeholder orders be re-derived from an id alone.
type OrderID struct {
	value    string
	millis   int64
	sequence int
}

// NewOrderID builds an id from its parts. The sequence must fit in four digits.
func NewOrderID(createdAt time.Time, sequence int) (OrderID, error) {
	if sequence < 0 || sequence > maxSequence {
		return OrderID{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 0, maxSequence)
	}

	millis := createdAt.UnixMilli()
	if millis < 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"createdAt",
			fmt.Errorf("%s is before the unix epoch", createdAt.Format(time.RFC3339)),
		)
	}

	return OrderID{
		value:    fmt.Sprintf("%s%d%0*d", orderIDPrefix, millis, sequenceDigits, sequence),
		millis:   millis,
		sequence: sequence,
	}, nil
}

// ParseOrderID reads an id of the form ORDER<millis><4-digit sequence>.
func ParseOrderID(s string) (OrderID, error) {
	m := orderIDPattern.FindStringSubmatch(s)
	if m == nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("%q does not match %s<millis><%d digits>", s, orderIDPrefix, sequenceDigits),
		)
	}

	millis, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}

	sequence, err := strconv.Atoi(m[2])
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}

	return OrderID{
		value:    s,
		millis:   millis,
		sequence: sequence,
	}, nil
}

// MustParseOrderID is ParseOrderID for literals in tests and fixtures.
func MustParseOrderID(s string) OrderID {
	id, err := ParseOrderID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id OrderID) String() string {
	return id.value
}

// Sequence returns the trailing four digit sequence number.
func (id OrderID) Sequence() int {
	return id.sequence
}

// CreatedAt returns the instant embedded in the id.
func (id OrderID) CreatedAt() time.Time {
	return time.UnixMilli(id.millis)
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}

// OrderIDGenerator hands out ids for newly created orders. The sequence cycles
// through 1..9999 so two orders created in the same millisecond never collide
// unless ten thousand of them are.
type OrderIDGenerator struct {
	mu       sync.Mutex
	now      func() time.Time
	sequence int
}

func NewOrderIDGenerator(now func() time.Time) *OrderIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &OrderIDGenerator{now: now}
}

// Next returns a fresh id stamped with the generator's clock.
func (g *OrderIDGenerator) Next() OrderID {
	g.mu.Lock()
	g.sequence = g.sequence%maxSequence + 1
	seq := g.sequence
	g.mu.Unlock()

	id, err := NewOrderID(g.now(), seq)
	if err != nil {
		// only reachable with a clock set before 1970
		id, _ = NewOrderID(time.UnixMilli(0), seq)
	}
	return id
}
