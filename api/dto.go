/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain types.
  Dates travel as "YYYY-MM-DD" strings, clock times as "HH:MM" (empty means
  not filled in yet), money amounts as decimal strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Parsing and validation happen in the handlers; DTOs are pure carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/gonami-gennnmja/remit-planner-sub000/payroll"
	"github.com/gonami-gennnmja/remit-planner-sub000/schedule"
)

// =============================================================================
// CLIENTS / WORKERS / SCHEDULES
// =============================================================================

type ClientDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

type CreateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Memo    string `json:"memo"`
}

type WorkerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Memo  string `json:"memo,omitempty"`
}

type CreateWorkerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Memo  string `json:"memo"`
}

type ScheduleDTO struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Memo      string `json:"memo,omitempty"`
}

type CreateScheduleRequest struct {
	ClientID  string `json:"client_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Memo      string `json:"memo"`
}

// =============================================================================
// SCHEDULE WORKERS / PERIODS
// =============================================================================

type TermsDTO struct {
	HourlyWage        string `json:"hourly_wage"`
	FuelAllowance     string `json:"fuel_allowance"`
	OtherAllowance    string `json:"other_allowance"`
	OvertimeEnabled   bool   `json:"overtime_enabled"`
	NightShiftEnabled bool   `json:"night_shift_enabled"`
	TaxWithheld       bool   `json:"tax_withheld"`
}

type ScheduleWorkerDTO struct {
	ID         string   `json:"id"`
	ScheduleID string   `json:"schedule_id"`
	WorkerID   string   `json:"worker_id"`
	Terms      TermsDTO `json:"terms"`
	WagePaid   bool     `json:"wage_paid"`
}

type AttachWorkerRequest struct {
	WorkerID     string   `json:"worker_id"`
	Terms        TermsDTO `json:"terms"`
	WorkDays     []string `json:"work_days"`
	Start        string   `json:"start_time"`
	End          string   `json:"end_time"`
	BreakMinutes int      `json:"break_minutes"`
}

type PeriodDTO struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Start        string `json:"start_time,omitempty"`
	End          string `json:"end_time,omitempty"`
	BreakMinutes int    `json:"break_minutes"`
	NetMinutes   int    `json:"net_minutes"`
}

type PeriodRequest struct {
	Date         string `json:"date"`
	Start        string `json:"start_time"`
	End          string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
}

type MarkPaidRequest struct {
	Paid bool `json:"paid"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type HoursDTO struct {
	Total    string `json:"total"`
	Regular  string `json:"regular"`
	Overtime string `json:"overtime"`
	Night    string `json:"night"`
}

type PayrollDTO struct {
	RegularPay     string `json:"regular_pay"`
	OvertimePay    string `json:"overtime_pay"`
	NightShiftPay  string `json:"night_shift_pay"`
	FuelAllowance  string `json:"fuel_allowance"`
	OtherAllowance string `json:"other_allowance"`
	TotalGross     string `json:"total_gross"`
	Tax            string `json:"tax"`
	Net            string `json:"net"`
}

type StatementDTO struct {
	ScheduleWorker ScheduleWorkerDTO `json:"schedule_worker"`
	Hours          HoursDTO          `json:"hours"`
	Pay            PayrollDTO        `json:"pay"`
}

type ScheduleStatementDTO struct {
	ScheduleID string         `json:"schedule_id"`
	Workers    []StatementDTO `json:"workers"`
	TotalGross string         `json:"total_gross"`
	TotalNet   string         `json:"total_net"`
}

type EstimateRequest struct {
	HourlyWage  string `json:"hourly_wage"`
	Hours       string `json:"hours"`
	TaxWithheld bool   `json:"tax_withheld"`
}

type EstimateDTO struct {
	Gross string `json:"gross"`
	Tax   string `json:"tax"`
	Net   string `json:"net"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toClientDTO(c schedule.Client) ClientDTO {
	return ClientDTO{ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address, Memo: c.Memo}
}

func toWorkerDTO(w schedule.Worker) WorkerDTO {
	return WorkerDTO{ID: w.ID, Name: w.Name, Phone: w.Phone, Memo: w.Memo}
}

func toScheduleDTO(s schedule.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:        s.ID,
		ClientID:  s.ClientID,
		Title:     s.Title,
		StartDate: s.StartDate.String(),
		EndDate:   s.EndDate.String(),
		Memo:      s.Memo,
	}
}

func toTermsDTO(t payroll.PayTerms) TermsDTO {
	return TermsDTO{
		HourlyWage:        t.HourlyWage.String(),
		FuelAllowance:     t.FuelAllowance.String(),
		OtherAllowance:    t.OtherAllowance.String(),
		OvertimeEnabled:   t.OvertimeEnabled,
		NightShiftEnabled: t.NightShiftEnabled,
		TaxWithheld:       t.TaxWithheld,
	}
}

func toScheduleWorkerDTO(sw schedule.ScheduleWorker) ScheduleWorkerDTO {
	return ScheduleWorkerDTO{
		ID:         sw.ID,
		ScheduleID: sw.ScheduleID,
		WorkerID:   sw.WorkerID,
		Terms:      toTermsDTO(sw.Terms),
		WagePaid:   sw.WagePaid,
	}
}

func toPeriodDTO(p schedule.Period) PeriodDTO {
	return PeriodDTO{
		ID:           p.ID,
		Date:         p.Date.String(),
		Start:        p.Start.String(),
		End:          p.End.String(),
		BreakMinutes: p.BreakMinutes,
		NetMinutes:   p.NetMinutes(),
	}
}

func toStatementDTO(st schedule.Statement) StatementDTO {
	return StatementDTO{
		ScheduleWorker: toScheduleWorkerDTO(st.ScheduleWorker),
		Hours: HoursDTO{
			Total:    st.Hours.Total.String(),
			Regular:  st.Hours.Regular.String(),
			Overtime: st.Hours.Overtime.String(),
			Night:    st.Hours.Night.String(),
		},
		Pay: PayrollDTO{
			RegularPay:     st.Pay.RegularPay.String(),
			OvertimePay:    st.Pay.OvertimePay.String(),
			NightShiftPay:  st.Pay.NightShiftPay.String(),
			FuelAllowance:  st.Pay.FuelAllowance.String(),
			OtherAllowance: st.Pay.OtherAllowance.String(),
			TotalGross:     st.Pay.TotalGross.String(),
			Tax:            st.Pay.Tax.String(),
			Net:            st.Pay.Net.String(),
		},
	}
}

// parseTerms converts a TermsDTO into PayTerms. Empty allowance strings
// default to zero; an empty wage stays zero and fails validation later,
// which is the error the caller should see.
func parseTerms(dto TermsDTO) (payroll.PayTerms, error) {
	t := payroll.PayTerms{
		FuelAllowance:     decimal.Zero,
		OtherAllowance:    decimal.Zero,
		OvertimeEnabled:   dto.OvertimeEnabled,
		NightShiftEnabled: dto.NightShiftEnabled,
		TaxWithheld:       dto.TaxWithheld,
	}
	var err error
	if dto.HourlyWage != "" {
		if t.HourlyWage, err = decimal.NewFromString(dto.HourlyWage); err != nil {
			return payroll.PayTerms{}, err
		}
	} else {
		t.HourlyWage = decimal.Zero
	}
	if dto.FuelAllowance != "" {
		if t.FuelAllowance, err = decimal.NewFromString(dto.FuelAllowance); err != nil {
			return payroll.PayTerms{}, err
		}
	}
	if dto.OtherAllowance != "" {
		if t.OtherAllowance, err = decimal.NewFromString(dto.OtherAllowance); err != nil {
			return payroll.PayTerms{}, err
		}
	}
	return t, nil
}
