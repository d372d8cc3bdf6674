package handler

import (
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/service"
)

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// UnitResponse represents a unit in API responses. Money is rendered with
// two decimals throughout, tariff rates as stored.
type UnitResponse struct {
	Number        int32  `json:"number"`
	Area          string `json:"area"`
	AccountNumber string `json:"accountNumber"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toUnitResponse(u *domain.Unit) UnitResponse {
	return UnitResponse{
		Number:        u.Number,
		Area:          u.Area.StringFixed(2),
		AccountNumber: u.AccountNumber,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// ReadingResponse represents a meter reading in API responses
type ReadingResponse struct {
	ID           int64  `json:"id"`
	UnitNumber   int32  `json:"unitNumber"`
	ReadingDate  string `json:"readingDate"`
	HotCounter   int64  `json:"hotCounter"`
	ColdCounter  int64  `json:"coldCounter"`
	NewHotMeter  bool   `json:"newHotMeter"`
	NewColdMeter bool   `json:"newColdMeter"`
}

func toReadingResponse(r *domain.MeterReading) ReadingResponse {
	return ReadingResponse{
		ID:           r.ID,
		UnitNumber:   r.UnitNumber,
		ReadingDate:  formatDate(r.ReadingDate),
		HotCounter:   r.HotCounter,
		ColdCounter:  r.ColdCounter,
		NewHotMeter:  r.NewHotMeter,
		NewColdMeter: r.NewColdMeter,
	}
}

func toReadingResponses(readings []*domain.MeterReading) []ReadingResponse {
	out := make([]ReadingResponse, 0, len(readings))
	for _, r := range readings {
		out = append(out, toReadingResponse(r))
	}
	return out
}

// TariffResponse represents a tariff period in API responses
type TariffResponse struct {
	ID             int32  `json:"id"`
	EffectiveDate  string `json:"effectiveDate"`
	MaintenanceFee string `json:"maintenanceFee"`
	RepairFund     string `json:"repairFund"`
	CentralHeating string `json:"centralHeating"`
	HotWater       string `json:"hotWater"`
	ColdWater      string `json:"coldWater"`
	Garbage        string `json:"garbage"`
	ParkingFee     string `json:"parkingFee"`
}

func toTariffResponse(t *domain.TariffPeriod) TariffResponse {
	return TariffResponse{
		ID:             t.ID,
		EffectiveDate:  formatDate(t.EffectiveDate),
		MaintenanceFee: t.MaintenanceFee.String(),
		RepairFund:     t.RepairFund.String(),
		CentralHeating: t.CentralHeating.String(),
		HotWater:       t.HotWater.String(),
		ColdWater:      t.ColdWater.String(),
		Garbage:        t.Garbage.String(),
		ParkingFee:     t.ParkingFee.String(),
	}
}

// TariffHistoryResponse is one page of tariff periods
type TariffHistoryResponse struct {
	Data       []TariffResponse `json:"data"`
	Page       int32            `json:"page"`
	PageSize   int32            `json:"pageSize"`
	TotalItems int64            `json:"totalItems"`
	TotalPages int32            `json:"totalPages"`
}

// OccupancyResponse represents an occupancy row in API responses
type OccupancyResponse struct {
	ID         int32  `json:"id"`
	UnitNumber int32  `json:"unitNumber"`
	StartDate  string `json:"startDate"`
	Occupants  int32  `json:"occupants"`
}

func toOccupancyResponse(o *domain.Occupancy) OccupancyResponse {
	return OccupancyResponse{
		ID:         o.ID,
		UnitNumber: o.UnitNumber,
		StartDate:  formatDate(o.StartDate),
		Occupants:  o.Occupants,
	}
}

func toOccupancyResponses(rows []*domain.Occupancy) []OccupancyResponse {
	out := make([]OccupancyResponse, 0, len(rows))
	for _, o := range rows {
		out = append(out, toOccupancyResponse(o))
	}
	return out
}

// HeatingSurchargeResponse includes the installment schedule
type HeatingSurchargeResponse struct {
	ID                 int32  `json:"id"`
	UnitNumber         int32  `json:"unitNumber"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	Total              string `json:"total"`
	Installments       int    `json:"installments"`
	MonthlyInstallment string `json:"monthlyInstallment"`
	LastInstallment    string `json:"lastInstallment"`
}

func toHeatingResponse(s *domain.HeatingSurcharge) HeatingSurchargeResponse {
	return HeatingSurchargeResponse{
		ID:                 s.ID,
		UnitNumber:         s.UnitNumber,
		StartDate:          formatDate(s.StartDate),
		EndDate:            formatDate(s.EndDate),
		Total:              s.Total.StringFixed(2),
		Installments:       s.Installments(),
		MonthlyInstallment: s.MonthlyInstallment().StringFixed(2),
		LastInstallment:    s.LastInstallment().StringFixed(2),
	}
}

// ParkingCardResponse represents a parking card row
type ParkingCardResponse struct {
	ID         int32  `json:"id"`
	UnitNumber int32  `json:"unitNumber"`
	StartDate  string `json:"startDate"`
	Cards      int32  `json:"cards"`
}

func toParkingCardResponse(c *domain.ParkingCard) ParkingCardResponse {
	return ParkingCardResponse{ID: c.ID, UnitNumber: c.UnitNumber, StartDate: formatDate(c.StartDate), Cards: c.Cards}
}

// FamilyDiscountResponse represents a family discount row
type FamilyDiscountResponse struct {
	ID         int32  `json:"id"`
	UnitNumber int32  `json:"unitNumber"`
	StartDate  string `json:"startDate"`
	Amount     string `json:"amount"`
}

func toFamilyDiscountResponse(d *domain.FamilyDiscount) FamilyDiscountResponse {
	return FamilyDiscountResponse{ID: d.ID, UnitNumber: d.UnitNumber, StartDate: formatDate(d.StartDate), Amount: d.Amount.StringFixed(2)}
}

// FeeResponse is the itemized fee for one reading
type FeeResponse struct {
	UnitNumber         int32  `json:"unitNumber"`
	ReadingID          int64  `json:"readingId"`
	ReadingDate        string `json:"readingDate"`
	TariffPeriodID     int32  `json:"tariffPeriodId"`
	Tenants            int32  `json:"tenants"`
	ParkingCards       int32  `json:"parkingCards"`
	Area               string `json:"area"`
	ColdUsed           int64  `json:"coldUsed"`
	HotUsed            int64  `json:"hotUsed"`
	ColdCounter        int64  `json:"coldCounter"`
	HotCounter         int64  `json:"hotCounter"`
	HotWaterCost       string `json:"hotWaterCost"`
	ColdWaterCost      string `json:"coldWaterCost"`
	MaintenanceCost    string `json:"maintenanceCost"`
	RepairFundCost     string `json:"repairFundCost"`
	CentralHeatingCost string `json:"centralHeatingCost"`
	GarbageCost        string `json:"garbageCost"`
	FamilyDiscount     string `json:"familyDiscount"`
	ParkingCost        string `json:"parkingCost"`
	HeatingSurcharge   string `json:"heatingSurcharge"`
	Total              string `json:"total"`
}

func toFeeResponse(f *domain.FeeBreakdown) FeeResponse {
	return FeeResponse{
		UnitNumber:         f.UnitNumber,
		ReadingID:          f.ReadingID,
		ReadingDate:        formatDate(f.ReadingDate),
		TariffPeriodID:     f.TariffPeriodID,
		Tenants:            f.Tenants,
		ParkingCards:       f.ParkingCards,
		Area:               f.Area.StringFixed(2),
		ColdUsed:           f.Usage.ColdUsed,
		HotUsed:            f.Usage.HotUsed,
		ColdCounter:        f.Usage.ColdCounter,
		HotCounter:         f.Usage.HotCounter,
		HotWaterCost:       f.HotWaterCost.StringFixed(2),
		ColdWaterCost:      f.ColdWaterCost.StringFixed(2),
		MaintenanceCost:    f.MaintenanceCost.StringFixed(2),
		RepairFundCost:     f.RepairFundCost.StringFixed(2),
		CentralHeatingCost: f.CentralHeatingCost.StringFixed(2),
		GarbageCost:        f.GarbageCost.StringFixed(2),
		FamilyDiscount:     f.FamilyDiscount.StringFixed(2),
		ParkingCost:        f.ParkingCost.StringFixed(2),
		HeatingSurcharge:   f.HeatingSurcharge.StringFixed(2),
		Total:              f.Total.StringFixed(2),
	}
}

// LedgerEntryResponse represents a ledger row in API responses
type LedgerEntryResponse struct {
	ID              int64   `json:"id"`
	Scope           string  `json:"scope"`
	UnitNumber      *int32  `json:"unitNumber,omitempty"`
	Date            string  `json:"date"`
	Title           string  `json:"title"`
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	Balance         string  `json:"balance"`
	Counterparty    *string `json:"counterparty,omitempty"`
	Description     *string `json:"description,omitempty"`
	TariffPeriodID  *int32  `json:"tariffPeriodId,omitempty"`
	SettlementRunID *string `json:"settlementRunId,omitempty"`
	MirroredFromID  *int64  `json:"mirroredFromId,omitempty"`
	ReadingID       *int64  `json:"readingId,omitempty"`
}

func toLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:             e.ID,
		Scope:          string(e.Scope),
		UnitNumber:     e.UnitNumber,
		Date:           formatDate(e.Date),
		Title:          e.Title,
		Amount:         e.Amount.StringFixed(2),
		Type:           string(e.Type),
		Balance:        e.Balance.StringFixed(2),
		Counterparty:   e.Counterparty,
		Description:    e.Description,
		TariffPeriodID: e.TariffPeriodID,
		MirroredFromID: e.MirroredFromID,
		ReadingID:      e.ReadingID,
	}
	if e.SettlementRunID != nil {
		id := e.SettlementRunID.String()
		resp.SettlementRunID = &id
	}
	return resp
}

func toLedgerEntryResponses(entries []*domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out
}

// LedgerPageResponse is one page of ledger entries, newest first
type LedgerPageResponse struct {
	Data       []LedgerEntryResponse `json:"data"`
	Page       int32                 `json:"page"`
	PageSize   int32                 `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int32                 `json:"totalPages"`
}

// UnitBalanceResponse is the current position of one unit
type UnitBalanceResponse struct {
	UnitNumber    int32   `json:"unitNumber"`
	AccountNumber string  `json:"accountNumber"`
	Balance       string  `json:"balance"`
	LastEntryDate *string `json:"lastEntryDate,omitempty"`
}

func toUnitBalanceResponses(balances []*service.UnitBalance) []UnitBalanceResponse {
	out := make([]UnitBalanceResponse, 0, len(balances))
	for _, b := range balances {
		r := UnitBalanceResponse{
			UnitNumber:    b.UnitNumber,
			AccountNumber: b.AccountNumber,
			Balance:       b.Balance.StringFixed(2),
		}
		if b.LastEntryDate != nil {
			d := formatDate(*b.LastEntryDate)
			r.LastEntryDate = &d
		}
		out = append(out, r)
	}
	return out
}

// UnitSettlementResponse is the outcome for one unit of a run
type UnitSettlementResponse struct {
	UnitNumber int32   `json:"unitNumber"`
	Status     string  `json:"status"`
	ReadingID  *int64  `json:"readingId,omitempty"`
	EntryID    *int64  `json:"entryId,omitempty"`
	Amount     *string `json:"amount,omitempty"`
	Balance    *string `json:"balance,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// SettlementResponse summarizes a settlement run
type SettlementResponse struct {
	RunID       string                   `json:"runId"`
	Date        string                   `json:"date"`
	Succeeded   int                      `json:"succeeded"`
	Failed      int                      `json:"failed"`
	Skipped     int                      `json:"skipped"`
	TotalAmount string                   `json:"totalAmount"`
	Units       []UnitSettlementResponse `json:"units"`
	StartedAt   string                   `json:"startedAt"`
	FinishedAt  string                   `json:"finishedAt"`
}

func toSettlementResponse(r *domain.SettlementResult) SettlementResponse {
	units := make([]UnitSettlementResponse, 0, len(r.Units))
	for _, u := range r.Units {
		item := UnitSettlementResponse{
			UnitNumber: u.UnitNumber,
			Status:     string(u.Status),
			ReadingID:  u.ReadingID,
			EntryID:    u.EntryID,
			Error:      u.Error,
		}
		if u.Amount != nil {
			s := u.Amount.StringFixed(2)
			item.Amount = &s
		}
		if u.Balance != nil {
			s := u.Balance.StringFixed(2)
			item.Balance = &s
		}
		units = append(units, item)
	}
	return SettlementResponse{
		RunID:       r.RunID.String(),
		Date:        formatDate(r.Date),
		Succeeded:   r.Succeeded,
		Failed:      r.Failed,
		Skipped:     r.Skipped,
		TotalAmount: r.TotalAmount.StringFixed(2),
		Units:       units,
		StartedAt:   r.StartedAt.Format(time.RFC3339),
		FinishedAt:  r.FinishedAt.Format(time.RFC3339),
	}
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       *string `json:"name"`
	Phone      *string `json:"phone,omitempty"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"isActive"`
	UnitNumber *int32  `json:"unitNumber,omitempty"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       string(u.Role()),
		IsActive:   u.IsActive,
		UnitNumber: u.UnitNumber,
	}
}

// ArticleResponse represents a notice board article in API responses
type ArticleResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
}

func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		PublishedAt: a.PublishedAt.Format(time.RFC3339),
	}
}

// ArticleListResponse is one page of the notice board
type ArticleListResponse struct {
	Data       []ArticleResponse `json:"data"`
	Page       int32             `json:"page"`
	PageSize   int32             `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int32             `json:"totalPages"`
}
