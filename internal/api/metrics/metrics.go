// Package metrics defines and registers all custom Prometheus metrics for
// the storefront API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts accounts created through admin creation or bootstrap.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// OrdersCreatedTotal counts orders appended to the ledger.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders recorded.",
	},
)

// ProductsMutatedTotal counts admin catalog mutations.
// Label:
//   - op: "create", "update", or "delete"
var ProductsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_mutated_total",
		Help:      "Total number of catalog mutations, by operation.",
	},
	[]string{"op"},
)

// CollectionOpsTotal counts snapshot reads and writes per collection.
// Labels:
//   - collection: "users", "products", or "orders"
//   - op: "read" or "write"
var CollectionOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_ops_total",
		Help:      "Total number of collection snapshot operations.",
	},
	[]string{"collection", "op"},
)

// ProductCacheTotal counts product cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProductCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Total number of product cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
