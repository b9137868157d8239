// Package metrics defines the custom Prometheus metrics for the storefront
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "novacommerce"

// UserRegistrationsTotal counts successfully created user accounts.
var UserRegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// UserLoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "rate_limited"
var UserLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// OrdersCreatedTotal counts orders created through checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created from cart checkout.",
	},
)

// PaymentsTotal counts payment lifecycle transitions.
// Label:
//   - status: "created", "succeeded", or "failed"
var PaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Total number of payment events, labelled by status.",
	},
	[]string{"status"},
)

// Login result label values.
const (
	LoginResultSuccess            = "success"
	LoginResultInvalidCredentials = "invalid_credentials"
	LoginResultRateLimited        = "rate_limited"
)

// Payment status label values.
const (
	PaymentEventCreated   = "created"
	PaymentEventSucceeded = "succeeded"
	PaymentEventFailed    = "failed"
)
