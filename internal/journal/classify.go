package journal

import (
	"strings"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// ClassifyAccounts assigns an account type to the distinct set of accounts a
// round trip touched. If every account carries the training prefix the trade
// is training, if none do it is live, otherwise it is mixed.
//
// An empty prefix disables training classification entirely: every account
// would trivially match it, so all trades are live instead.
func ClassifyAccounts(accounts []string, trainingPrefix string) types.AccountType {
	if trainingPrefix == "" || len(accounts) == 0 {
		return types.AccountTypeLive
	}

	training := 0

	for _, account := range accounts {
		if strings.HasPrefix(account, trainingPrefix) {
			training++
		}
	}

	switch training {
	case 0:
		return types.AccountTypeLive
	case len(accounts):
		return types.AccountTypeTraining
	default:
		return types.AccountTypeMixed
	}
}
