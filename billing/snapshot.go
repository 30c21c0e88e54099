package billing

// Snapshot is a point-in-time view of a Stripe subscription reduced to the
// fields the reconciliation pipeline consumes. Epoch fields use 0 for absent.
type Snapshot struct {
	SubscriptionID     string
	CustomerID         string
	Status             string
	CancelAtPeriodEnd  bool
	CurrentPeriodEnd   int64
	BillingCycleAnchor int64
}

// SetupIntent is the slice of a Stripe setup intent the frontend needs to
// collect a payment method.
type SetupIntent struct {
	ID           string
	ClientSecret string
}

// Provider is the Stripe surface the billing package depends on. Every call
// is a single attempt against the remote API; retries, if any, belong to the
// caller or to Stripe's own webhook redelivery.
type Provider interface {
	CreateCustomer(email string, metadata map[string]string) (string, error)
	CreateSubscription(customerID, priceID string) (Snapshot, error)
	RetrieveSubscription(subscriptionID string) (Snapshot, error)
	UpdateSubscription(subscriptionID string, cancelAtPeriodEnd bool) (Snapshot, error)
	CreateSetupIntent(customerID string) (SetupIntent, error)
}

// Client is the active provider. Tests swap it for a fake, the same way
// testutils swaps db.DB.
var Client Provider = stripeProvider{}
