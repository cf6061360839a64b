package model

// ProviderKind classifies a provider explicitly. The backend sends a category
// id; normalization resolves it here once so view logic never has to guess
// from the provider's name.
type ProviderKind string

// Known provider kinds.
const (
	ProviderBank      ProviderKind = "bank"
	ProviderUtility   ProviderKind = "utility"
	ProviderInsurance ProviderKind = "insurance"
	ProviderLandlord  ProviderKind = "landlord"
	ProviderOther     ProviderKind = "other"
)

// providerKindByCategoryID maps the backend's provider category ids to kinds.
var providerKindByCategoryID = map[int]ProviderKind{
	1: ProviderBank,
	2: ProviderUtility,
	3: ProviderInsurance,
	4: ProviderLandlord,
}

// Provider is the counterparty of an expense, income, or loan.
type Provider struct {
	ID   string
	Name string
	Kind ProviderKind
}

// ResolveProviderKind maps a backend category id to a ProviderKind,
// defaulting to ProviderOther for unknown ids.
func ResolveProviderKind(categoryID int) ProviderKind {
	if kind, ok := providerKindByCategoryID[categoryID]; ok {
		return kind
	}
	return ProviderOther
}
