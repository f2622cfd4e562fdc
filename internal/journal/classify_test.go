package journal

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAccounts(t *testing.T) {
	tests := []struct {
		name     string
		accounts []string
		prefix   string
		expected types.AccountType
	}{
		{
			name:     "all live",
			accounts: []string{"A1", "A2"},
			prefix:   "TR",
			expected: types.AccountTypeLive,
		},
		{
			name:     "all training",
			accounts: []string{"TR1", "TR2"},
			prefix:   "TR",
			expected: types.AccountTypeTraining,
		},
		{
			name:     "mixed",
			accounts: []string{"A1", "TR1"},
			prefix:   "TR",
			expected: types.AccountTypeMixed,
		},
		{
			name:     "empty prefix disables training",
			accounts: []string{"TR1", "TR2"},
			prefix:   "",
			expected: types.AccountTypeLive,
		},
		{
			name:     "no accounts",
			accounts: nil,
			prefix:   "TR",
			expected: types.AccountTypeLive,
		},
		{
			name:     "prefix must match start of name",
			accounts: []string{"XTR1"},
			prefix:   "TR",
			expected: types.AccountTypeLive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyAccounts(tt.accounts, tt.prefix))
		})
	}
}
