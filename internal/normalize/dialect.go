package normalize

// DefaultDialectTable returns the built-in dialect-to-standard token table.
// Whole-word matches only. The table is deliberately small and closed;
// entries map common Gulf/Levantine tokens to their formal equivalents.
// Every target is itself canonical so normalization stays idempotent.
func DefaultDialectTable() map[string]string {
	return map[string]string{
		// Question words
		"وش":  "ما",
		"ايش": "ما",
		"شنو": "ما",
		"ليش": "لماذا",
		"ليه": "لماذا",
		"وين": "اين",
		"فين": "اين",

		// Relative pronouns
		"اللي": "الذي",
		"الي":  "الذي",

		// Want/need verbs
		"ابي":  "اريد",
		"ابغي": "اريد",
		"ودي":  "اريد",
		"بغيت": "اريد",

		// Negation
		"مو": "ليس",
		"مب": "ليس",

		// Demonstratives
		"هذي": "هذه",
		"ذي":  "هذه",
		"كذا": "هكذا",
	}
}
