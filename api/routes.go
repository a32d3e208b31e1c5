package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// BatchesEndpoint opens a new batch (POST)
	BatchesEndpoint = "/batches"
	// BatchCloseEndpoint closes the currently open batch (POST)
	BatchCloseEndpoint = "/batches/close"
	// BatchEndpoint returns the info of a single batch
	BatchURLParam = "batchId"
	BatchEndpoint = "/batches/{" + BatchURLParam + "}"
	// BatchContributionsEndpoint lists the contributions of a batch in
	// submission order
	BatchContributionsEndpoint = "/batches/{" + BatchURLParam + "}/contributions"
	// ContributionsEndpoint submits a contribution to the open batch (POST)
	ContributionsEndpoint = "/contributions"
	// SettlementsEndpoint triggers the settlement of a closed batch (POST)
	SettlementsEndpoint = "/settlements"
	// SettlementEndpoint returns a settlement request by its oracle token
	TokenURLParam      = "token"
	SettlementEndpoint = "/settlements/{" + TokenURLParam + "}"
	// SettlementResultEndpoint is the inbound callback delivering the
	// decryption result for a token (POST)
	SettlementResultEndpoint = "/settlements/{" + TokenURLParam + "}/result"
	// NotificationsEndpoint returns the append-only observer feed
	NotificationsEndpoint = "/notifications"
	// Administrative endpoints
	AdminProvidersEndpoint = "/admin/providers"
	AddressURLParam        = "address"
	AdminProviderEndpoint  = "/admin/providers/{" + AddressURLParam + "}"
	AdminPauseEndpoint     = "/admin/pause"
	AdminCooldownEndpoint  = "/admin/cooldown"
	AdminTransferEndpoint  = "/admin/transfer"
)

// ActorHeader carries the caller identity; the transport stand-in for an
// authenticated actor address.
const ActorHeader = "X-Actor"
