package pump

import "pumpScope/internal/anchor"

// Program families.
const (
	FamilyPump    = "pump"
	FamilyPumpAMM = "pump_amm"
)

// Program addresses watched by default.
const (
	PumpProgramID    = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	PumpAMMProgramID = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"
)

// Registry returns every known codec in scan priority order: the
// token-launch family first, then the pool family.
func Registry() []anchor.Codec {
	return []anchor.Codec{
		{Name: "CreateEvent", Family: FamilyPump, Discriminator: CreateEventDiscriminator, New: func() anchor.Event { return &CreateEvent{} }},
		{Name: "CompleteEvent", Family: FamilyPump, Discriminator: CompleteEventDiscriminator, New: func() anchor.Event { return &CompleteEvent{} }},
		{Name: "TradeEvent", Family: FamilyPump, Discriminator: TradeEventDiscriminator, New: func() anchor.Event { return &TradeEvent{} }},
		{Name: "BuyEvent", Family: FamilyPumpAMM, Discriminator: BuyEventDiscriminator, New: func() anchor.Event { return &BuyEvent{} }},
		{Name: "SellEvent", Family: FamilyPumpAMM, Discriminator: SellEventDiscriminator, New: func() anchor.Event { return &SellEvent{} }},
		{Name: "CreatePoolEvent", Family: FamilyPumpAMM, Discriminator: CreatePoolEventDiscriminator, New: func() anchor.Event { return &CreatePoolEvent{} }},
	}
}
