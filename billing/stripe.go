package billing

import (
	"os"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/setupintent"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
)

// stripeProvider implements Provider against the live Stripe API.
type stripeProvider struct{}

func initStripe() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

func (stripeProvider) CreateCustomer(email string, metadata map[string]string) (string, error) {
	initStripe()

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return cust.ID, nil
}

func (stripeProvider) CreateSubscription(customerID, priceID string) (Snapshot, error) {
	initStripe()

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}

	sub, err := stripeSubscription.New(params)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotFromStripe(sub), nil
}

func (stripeProvider) RetrieveSubscription(subscriptionID string) (Snapshot, error) {
	initStripe()

	sub, err := stripeSubscription.Get(subscriptionID, nil)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotFromStripe(sub), nil
}

func (stripeProvider) UpdateSubscription(subscriptionID string, cancelAtPeriodEnd bool) (Snapshot, error) {
	initStripe()

	sub, err := stripeSubscription.Update(subscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancelAtPeriodEnd),
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotFromStripe(sub), nil
}

func (stripeProvider) CreateSetupIntent(customerID string) (SetupIntent, error) {
	initStripe()

	si, err := setupintent.New(&stripe.SetupIntentParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	})
	if err != nil {
		return SetupIntent{}, err
	}
	return SetupIntent{ID: si.ID, ClientSecret: si.ClientSecret}, nil
}

// snapshotFromStripe reduces a Stripe subscription to the fields the pipeline
// consumes. Since the v82 API the period end lives on the subscription items
// and is not always populated; the billing cycle anchor rides along as the
// fallback source.
func snapshotFromStripe(sub *stripe.Subscription) Snapshot {
	snap := Snapshot{
		SubscriptionID:     sub.ID,
		Status:             string(sub.Status),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		BillingCycleAnchor: sub.BillingCycleAnchor,
	}
	if sub.Customer != nil {
		snap.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		snap.CurrentPeriodEnd = sub.Items.Data[0].CurrentPeriodEnd
	}
	return snap
}

// SnapshotFromEvent builds a snapshot from a webhook payload. Events created
// under older API versions keep current_period_end at the top level of the
// subscription object where the typed struct no longer has it, so the raw
// payload is consulted when the typed fields come back empty.
func SnapshotFromEvent(sub *stripe.Subscription, raw map[string]interface{}) Snapshot {
	snap := snapshotFromStripe(sub)
	if snap.CurrentPeriodEnd == 0 {
		if epoch, ok := epochSeconds(raw["current_period_end"]); ok && epoch > 0 {
			snap.CurrentPeriodEnd = epoch
		}
	}
	if snap.BillingCycleAnchor == 0 {
		if epoch, ok := epochSeconds(raw["billing_cycle_anchor"]); ok && epoch > 0 {
			snap.BillingCycleAnchor = epoch
		}
	}
	return snap
}
