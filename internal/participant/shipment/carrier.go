package shipment

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// SupportedCarriers lists every carrier shipments can be booked with.
var SupportedCarriers = []string{"DHL", "DPD", "GLS", "Hrvatska Pošta"}

// CarrierGateway simulates the carrier booking systems. The toggles exist for
// fault injection through the config console; both default to enabled.
type CarrierGateway struct {
	mu                  sync.RWMutex
	availabilityEnabled bool
	capacityEnabled     bool
	logger              zerolog.Logger
}

// NewCarrierGateway creates a gateway with all validations enabled.
func NewCarrierGateway(logger zerolog.Logger) *CarrierGateway {
	return &CarrierGateway{
		availabilityEnabled: true,
		capacityEnabled:     true,
		logger:              logger,
	}
}

// Available reports whether the named carrier accepts bookings.
func (g *CarrierGateway) Available(carrier string) bool {
	if !supported(carrier) {
		g.logger.Warn().Str("carrier", carrier).Msg("unsupported carrier")
		return false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.availabilityEnabled {
		g.logger.Warn().Str("carrier", carrier).Msg("carrier is currently unavailable")
		return false
	}
	return true
}

// ValidateAddress checks the shipping address against carrier requirements.
func (g *CarrierGateway) ValidateAddress(carrier, address string) bool {
	if strings.TrimSpace(address) == "" {
		g.logger.Warn().Str("carrier", carrier).Msg("empty shipping address")
		return false
	}
	if len(address) < 10 {
		g.logger.Warn().Str("carrier", carrier).Msg("shipping address too short")
		return false
	}
	return true
}

// HasCapacity reports whether the carrier can take another shipment.
func (g *CarrierGateway) HasCapacity(carrier string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.capacityEnabled {
		g.logger.Warn().Str("carrier", carrier).Msg("carrier is at full capacity")
		return false
	}
	return true
}

// SetAvailability toggles the availability check (fault injection).
func (g *CarrierGateway) SetAvailability(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.availabilityEnabled = enabled
}

// SetCapacity toggles the capacity check (fault injection).
func (g *CarrierGateway) SetCapacity(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.capacityEnabled = enabled
}

// State reports the current toggle values.
func (g *CarrierGateway) State() (availability, capacity bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.availabilityEnabled, g.capacityEnabled
}

func supported(carrier string) bool {
	for _, c := range SupportedCarriers {
		if c == carrier {
			return true
		}
	}
	return false
}
