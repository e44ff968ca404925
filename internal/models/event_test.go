package models

import (
	"testing"
)

func TestEventSaveRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     EventSaveRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: EventSaveRequest{
				Slug:        "joao-maria",
				SlugPremium: "joao-maria-vip",
				MainTitle:   "Joao & Maria",
				LayoutTheme: ThemeClassic,
			},
			wantErr: false,
		},
		{
			name:    "empty slugs are allowed",
			req:     EventSaveRequest{MainTitle: "Nosso Evento"},
			wantErr: false,
		},
		{
			name: "premium slug must differ",
			req: EventSaveRequest{
				Slug:        "joao-maria",
				SlugPremium: "joao-maria",
			},
			wantErr: true,
		},
		{
			name:    "uppercase slug rejected",
			req:     EventSaveRequest{Slug: "Joao-Maria"},
			wantErr: true,
		},
		{
			name:    "dotted slug rejected",
			req:     EventSaveRequest{Slug: "favicon.ico"},
			wantErr: true,
		},
		{
			name:    "reserved slug rejected",
			req:     EventSaveRequest{Slug: "dashboard"},
			wantErr: true,
		},
		{
			name:    "unknown theme rejected",
			req:     EventSaveRequest{LayoutTheme: "neon"},
			wantErr: true,
		},
		{
			name: "invalid gift rejected",
			req: EventSaveRequest{
				Gifts: []GiftInput{{Title: "", ValueDefault: 100}},
			},
			wantErr: true,
		},
		{
			name: "negative gift value rejected",
			req: EventSaveRequest{
				Gifts: []GiftInput{{Title: "Jantar", ValueDefault: -1}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvent_EffectiveFeePercentage(t *testing.T) {
	custom := 0.05
	withOverride := &Event{CustomFeePercentage: &custom}
	withoutOverride := &Event{}

	if got := withOverride.EffectiveFeePercentage(0.03); got != 0.05 {
		t.Errorf("override fee = %v, want 0.05", got)
	}
	if got := withoutOverride.EffectiveFeePercentage(0.03); got != 0.03 {
		t.Errorf("default fee = %v, want 0.03", got)
	}

	zero := 0.0
	free := &Event{CustomFeePercentage: &zero}
	if got := free.EffectiveFeePercentage(0.03); got != 0 {
		t.Errorf("explicit zero fee = %v, want 0", got)
	}
}

func TestEvent_PublicPath(t *testing.T) {
	withSlug := &Event{ID: 42, Slug: "joao-maria"}
	if got := withSlug.PublicPath(); got != "/joao-maria" {
		t.Errorf("PublicPath() = %q, want /joao-maria", got)
	}

	withoutSlug := &Event{ID: 42}
	if got := withoutSlug.PublicPath(); got != "/casamento/42" {
		t.Errorf("PublicPath() = %q, want /casamento/42", got)
	}
}

func TestEvent_HasPaymentCredentials(t *testing.T) {
	if (&Event{}).HasPaymentCredentials() {
		t.Error("event without credentials reported as configured")
	}
	if (&Event{MPCredentials: &MPCredentials{}}).HasPaymentCredentials() {
		t.Error("credentials without access token reported as configured")
	}
	linked := &Event{MPCredentials: &MPCredentials{AccessToken: "APP_USR-1", UserID: 99}}
	if !linked.HasPaymentCredentials() {
		t.Error("linked event reported as unconfigured")
	}
}
