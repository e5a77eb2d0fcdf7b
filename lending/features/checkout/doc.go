// Package checkout lends one copy of a title to a member class.
//
// The decision is the engine's Checkout transaction run on the projected state: eligibility first,
// then availability. A refusal is appended as a CheckoutRefused error event, so the journal tells
// which requests were turned down and why.
package checkout
