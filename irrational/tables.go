package irrational

// NumSequences is the number of digit tables in a Bank.
const NumSequences = 8

// TableLength is the number of digits in every table.
const TableLength = 256

// Sequence indices
const (
	SeqPi      = 0
	SeqPhi     = 1
	SeqTau     = 2
	SeqEuler   = 3
	SeqRoot2   = 4
	SeqDress   = 5
	SeqDress31 = 6
	SeqDress63 = 7
)

// SequenceNames are short display names, indexed by sequence
var SequenceNames = [NumSequences]string{"pi", "phi", "tau", "e", "rt2", "dress", "dress31", "dress63"}

// Table is one read-only run of decimal digits (0-9)
type Table [TableLength]uint8

// Bank holds the selectable tables. A nil entry behaves like an out-of-range index.
type Bank [NumSequences]*Table

// DefaultBank returns the built-in constant tables
func DefaultBank() *Bank {
	return &Bank{&piDigits, &phiDigits, &tauDigits, &eulerDigits, &root2Digits, &dressDigits, &dress31Digits, &dress63Digits}
}

// Digit returns the digit of table seq at pos. ok is false when seq or pos is out of range.
func (b *Bank) Digit(seq, pos int) (digit uint8, ok bool) {
	if b == nil || seq < 0 || seq >= NumSequences || pos < 0 || pos >= TableLength {
		return 0, false
	}
	t := b[seq]
	if t == nil {
		return 0, false
	}
	return t[pos], true
}

// SequenceName returns the display name for seq, or "?" when out of range
func SequenceName(seq int) string {
	if seq < 0 || seq >= NumSequences {
		return "?"
	}
	return SequenceNames[seq]
}

// Digit tables include the integer part, so pi starts 3, 1, 4.
// The dress tables are binary weights: dress is popcount(n), dress31 is
// popcount(n mod 31) and dress63 is popcount(n mod 63).
var (
	piDigits = Table{
		3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4, 6, 2, 6, 4, 3, 3, 8, 3, 2, 7, 9, 5,
		0, 2, 8, 8, 4, 1, 9, 7, 1, 6, 9, 3, 9, 9, 3, 7, 5, 1, 0, 5, 8, 2, 0, 9, 7, 4, 9, 4, 4, 5, 9, 2,
		3, 0, 7, 8, 1, 6, 4, 0, 6, 2, 8, 6, 2, 0, 8, 9, 9, 8, 6, 2, 8, 0, 3, 4, 8, 2, 5, 3, 4, 2, 1, 1,
		7, 0, 6, 7, 9, 8, 2, 1, 4, 8, 0, 8, 6, 5, 1, 3, 2, 8, 2, 3, 0, 6, 6, 4, 7, 0, 9, 3, 8, 4, 4, 6,
		0, 9, 5, 5, 0, 5, 8, 2, 2, 3, 1, 7, 2, 5, 3, 5, 9, 4, 0, 8, 1, 2, 8, 4, 8, 1, 1, 1, 7, 4, 5, 0,
		2, 8, 4, 1, 0, 2, 7, 0, 1, 9, 3, 8, 5, 2, 1, 1, 0, 5, 5, 5, 9, 6, 4, 4, 6, 2, 2, 9, 4, 8, 9, 5,
		4, 9, 3, 0, 3, 8, 1, 9, 6, 4, 4, 2, 8, 8, 1, 0, 9, 7, 5, 6, 6, 5, 9, 3, 3, 4, 4, 6, 1, 2, 8, 4,
		7, 5, 6, 4, 8, 2, 3, 3, 7, 8, 6, 7, 8, 3, 1, 6, 5, 2, 7, 1, 2, 0, 1, 9, 0, 9, 1, 4, 5, 6, 4, 8,
	}
	phiDigits = Table{
		1, 6, 1, 8, 0, 3, 3, 9, 8, 8, 7, 4, 9, 8, 9, 4, 8, 4, 8, 2, 0, 4, 5, 8, 6, 8, 3, 4, 3, 6, 5, 6,
		3, 8, 1, 1, 7, 7, 2, 0, 3, 0, 9, 1, 7, 9, 8, 0, 5, 7, 6, 2, 8, 6, 2, 1, 3, 5, 4, 4, 8, 6, 2, 2,
		7, 0, 5, 2, 6, 0, 4, 6, 2, 8, 1, 8, 9, 0, 2, 4, 4, 9, 7, 0, 7, 2, 0, 7, 2, 0, 4, 1, 8, 9, 3, 9,
		1, 1, 3, 7, 4, 8, 4, 7, 5, 4, 0, 8, 8, 0, 7, 5, 3, 8, 6, 8, 9, 1, 7, 5, 2, 1, 2, 6, 6, 3, 3, 8,
		6, 2, 2, 2, 3, 5, 3, 6, 9, 3, 1, 7, 9, 3, 1, 8, 0, 0, 6, 0, 7, 6, 6, 7, 2, 6, 3, 5, 4, 4, 3, 3,
		3, 8, 9, 0, 8, 6, 5, 9, 5, 9, 3, 9, 5, 8, 2, 9, 0, 5, 6, 3, 8, 3, 2, 2, 6, 6, 1, 3, 1, 9, 9, 2,
		8, 2, 9, 0, 2, 6, 7, 8, 8, 0, 6, 7, 5, 2, 0, 8, 7, 6, 6, 8, 9, 2, 5, 0, 1, 7, 1, 1, 6, 9, 6, 2,
		0, 7, 0, 3, 2, 2, 2, 1, 0, 4, 3, 2, 1, 6, 2, 6, 9, 5, 4, 8, 6, 2, 6, 2, 9, 6, 3, 1, 3, 6, 1, 4,
	}
	tauDigits = Table{
		6, 2, 8, 3, 1, 8, 5, 3, 0, 7, 1, 7, 9, 5, 8, 6, 4, 7, 6, 9, 2, 5, 2, 8, 6, 7, 6, 6, 5, 5, 9, 0,
		0, 5, 7, 6, 8, 3, 9, 4, 3, 3, 8, 7, 9, 8, 7, 5, 0, 2, 1, 1, 6, 4, 1, 9, 4, 9, 8, 8, 9, 1, 8, 4,
		6, 1, 5, 6, 3, 2, 8, 1, 2, 5, 7, 2, 4, 1, 7, 9, 9, 7, 2, 5, 6, 0, 6, 9, 6, 5, 0, 6, 8, 4, 2, 3,
		4, 1, 3, 5, 9, 6, 4, 2, 9, 6, 1, 7, 3, 0, 2, 6, 5, 6, 4, 6, 1, 3, 2, 9, 4, 1, 8, 7, 6, 8, 9, 2,
		1, 9, 1, 0, 1, 1, 6, 4, 4, 6, 3, 4, 5, 0, 7, 1, 8, 8, 1, 6, 2, 5, 6, 9, 6, 2, 2, 3, 4, 9, 0, 0,
		5, 6, 8, 2, 0, 5, 4, 0, 3, 8, 7, 7, 0, 4, 2, 2, 1, 1, 1, 1, 9, 2, 8, 9, 2, 4, 5, 8, 9, 7, 9, 0,
		9, 8, 6, 0, 7, 6, 3, 9, 2, 8, 8, 5, 7, 6, 2, 1, 9, 5, 1, 3, 3, 1, 8, 6, 6, 8, 9, 2, 2, 5, 6, 9,
		5, 1, 2, 9, 6, 4, 6, 7, 5, 7, 3, 5, 6, 6, 3, 3, 0, 5, 4, 2, 4, 0, 3, 8, 1, 8, 2, 9, 1, 2, 9, 7,
	}
	eulerDigits = Table{
		2, 7, 1, 8, 2, 8, 1, 8, 2, 8, 4, 5, 9, 0, 4, 5, 2, 3, 5, 3, 6, 0, 2, 8, 7, 4, 7, 1, 3, 5, 2, 6,
		6, 2, 4, 9, 7, 7, 5, 7, 2, 4, 7, 0, 9, 3, 6, 9, 9, 9, 5, 9, 5, 7, 4, 9, 6, 6, 9, 6, 7, 6, 2, 7,
		7, 2, 4, 0, 7, 6, 6, 3, 0, 3, 5, 3, 5, 4, 7, 5, 9, 4, 5, 7, 1, 3, 8, 2, 1, 7, 8, 5, 2, 5, 1, 6,
		6, 4, 2, 7, 4, 2, 7, 4, 6, 6, 3, 9, 1, 9, 3, 2, 0, 0, 3, 0, 5, 9, 9, 2, 1, 8, 1, 7, 4, 1, 3, 5,
		9, 6, 6, 2, 9, 0, 4, 3, 5, 7, 2, 9, 0, 0, 3, 3, 4, 2, 9, 5, 2, 6, 0, 5, 9, 5, 6, 3, 0, 7, 3, 8,
		1, 3, 2, 3, 2, 8, 6, 2, 7, 9, 4, 3, 4, 9, 0, 7, 6, 3, 2, 3, 3, 8, 2, 9, 8, 8, 0, 7, 5, 3, 1, 9,
		5, 2, 5, 1, 0, 1, 9, 0, 1, 1, 5, 7, 3, 8, 3, 4, 1, 8, 7, 9, 3, 0, 7, 0, 2, 1, 5, 4, 0, 8, 9, 1,
		4, 9, 9, 3, 4, 8, 8, 4, 1, 6, 7, 5, 0, 9, 2, 4, 4, 7, 6, 1, 4, 6, 0, 6, 6, 8, 0, 8, 2, 2, 6, 4,
	}
	root2Digits = Table{
		1, 4, 1, 4, 2, 1, 3, 5, 6, 2, 3, 7, 3, 0, 9, 5, 0, 4, 8, 8, 0, 1, 6, 8, 8, 7, 2, 4, 2, 0, 9, 6,
		9, 8, 0, 7, 8, 5, 6, 9, 6, 7, 1, 8, 7, 5, 3, 7, 6, 9, 4, 8, 0, 7, 3, 1, 7, 6, 6, 7, 9, 7, 3, 7,
		9, 9, 0, 7, 3, 2, 4, 7, 8, 4, 6, 2, 1, 0, 7, 0, 3, 8, 8, 5, 0, 3, 8, 7, 5, 3, 4, 3, 2, 7, 6, 4,
		1, 5, 7, 2, 7, 3, 5, 0, 1, 3, 8, 4, 6, 2, 3, 0, 9, 1, 2, 2, 9, 7, 0, 2, 4, 9, 2, 4, 8, 3, 6, 0,
		5, 5, 8, 5, 0, 7, 3, 7, 2, 1, 2, 6, 4, 4, 1, 2, 1, 4, 9, 7, 0, 9, 9, 9, 3, 5, 8, 3, 1, 4, 1, 3,
		2, 2, 2, 6, 6, 5, 9, 2, 7, 5, 0, 5, 5, 9, 2, 7, 5, 5, 7, 9, 9, 9, 5, 0, 5, 0, 1, 1, 5, 2, 7, 8,
		2, 0, 6, 0, 5, 7, 1, 4, 7, 0, 1, 0, 9, 5, 5, 9, 9, 7, 1, 6, 0, 5, 9, 7, 0, 2, 7, 4, 5, 3, 4, 5,
		9, 6, 8, 6, 2, 0, 1, 4, 7, 2, 8, 5, 1, 7, 4, 1, 8, 6, 4, 0, 8, 8, 9, 1, 9, 8, 6, 0, 9, 5, 5, 2,
	}
	dressDigits = Table{
		0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5,
		1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6,
		1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6,
		2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6, 3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7,
		1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6,
		2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6, 3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7,
		2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 6, 3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7,
		3, 4, 4, 5, 4, 5, 5, 6, 4, 5, 5, 6, 5, 6, 6, 7, 4, 5, 5, 6, 5, 6, 6, 7, 5, 6, 6, 7, 6, 7, 7, 8,
	}
	dress31Digits = Table{
		0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0,
		1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1,
		1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1, 1,
		2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1, 1, 2,
		1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1, 1, 2, 1,
		2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1, 1, 2, 1, 2,
		2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1, 1, 2, 1, 2, 2,
		3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 0, 1, 1, 2, 1, 2, 2, 3,
	}
	dress63Digits = Table{
		0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5,
		1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 0,
		1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 1,
		2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 0, 1,
		1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 1, 2,
		2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 0, 1, 1,
		2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4, 1, 2, 2, 3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 1, 2, 2,
		3, 2, 3, 3, 4, 2, 3, 3, 4, 3, 4, 4, 5, 2, 3, 3, 4, 3, 4, 4, 5, 3, 4, 4, 5, 4, 5, 5, 0, 1, 1, 2,
	}
)
