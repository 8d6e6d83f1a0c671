package ledger

var categories = map[TransactionType][]string{
	TransactionTypeIncome:  {"Salary", "Freelance", "Investment", "Gift", "Other"},
	TransactionTypeExpense: {"Food", "Transport", "Shopping", "Bills", "Entertainment", "Healthcare", "Education", "Other"},
}

// Categories returns categories offered for a given type.
// Unknown type has no categories
func Categories(t TransactionType) []string {
	list := categories[t]
	result := make([]string, len(list))
	copy(result, list)
	return result
}

// AllCategories returns unique categories of all types, income first
func AllCategories() []string {
	seen := map[string]bool{}
	result := []string{}
	for _, t := range []TransactionType{TransactionTypeIncome, TransactionTypeExpense} {
		for _, category := range categories[t] {
			if !seen[category] {
				seen[category] = true
				result = append(result, category)
			}
		}
	}
	return result
}

// IsValidCategory checks if the category belongs to the vocabulary of the type
func IsValidCategory(t TransactionType, category string) bool {
	for _, c := range categories[t] {
		if c == category {
			return true
		}
	}
	return false
}
