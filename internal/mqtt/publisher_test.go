package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPurpose: Validates the per-tenant notification topic layout.
// Scope: Unit Test
// Expected: Topics are <prefix>/<tenantID>, one channel per tenant.
// Test Case ID: MQT-01
func TestMQTT_TenantTopic(t *testing.T) {
	assert.Equal(t, "plant-conditions/client-1", TenantTopic("plant-conditions", "client-1"))
	assert.Equal(t, "plant-conditions/client-2", TenantTopic("plant-conditions", "client-2"))
	assert.NotEqual(t,
		TenantTopic("plant-conditions", "client-1"),
		TenantTopic("plant-conditions", "client-2"),
	)
}
