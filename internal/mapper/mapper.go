package mapper

import (
	"strconv"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/draft"
	"github.com/portfolio-mgmt/pms-wizard/internal/format"
	"github.com/portfolio-mgmt/pms-wizard/internal/navguard"
	"github.com/portfolio-mgmt/pms-wizard/internal/session"
)

// ToLineItem converts a stored budget line into a persisted wizard item
func ToLineItem(item *domain.BudgetLineItem) draft.LineItem {
	li := draft.LineItem{
		ID:                    ServerItemID(item.ID),
		Description:           item.Description,
		Comments:              item.Comments,
		Amount:                item.Amount,
		CANID:                 copyID(item.CANID),
		AgreementID:           item.AgreementID,
		ServicesComponentID:   copyID(item.ServicesComponentID),
		Status:                draft.Status(item.Status),
		ProcShopFeePercentage: item.ProcShopFeePercentage,
		PSCFeeAmount:          format.FeeAmount(item.Amount, item.ProcShopFeePercentage),
		Persisted: &draft.Persistence{
			ServerID:  item.ID,
			CreatedOn: item.CreatedAt,
			CreatedBy: item.CreatedBy,
			UpdatedOn: item.UpdatedAt,
		},
	}
	if item.DateNeeded != nil {
		d := *item.DateNeeded
		li.DateNeeded = &d
	}
	if item.CAN != nil {
		li.CAN = &draft.CANSnapshot{
			ID:          item.CAN.ID,
			Number:      item.CAN.Number,
			Description: item.CAN.Description,
		}
	}
	return li
}

// ToBudgetLineItem converts a wizard item into a row to create or update
func ToBudgetLineItem(li draft.LineItem, createdBy string) *domain.BudgetLineItem {
	status := domain.BudgetLineStatus(li.Status)
	if status == "" {
		status = domain.BudgetLineStatusDraft
	}
	item := &domain.BudgetLineItem{
		AgreementID:           li.AgreementID,
		Description:           li.Description,
		Comments:              li.Comments,
		Amount:                li.Amount,
		CANID:                 copyID(li.CANID),
		ServicesComponentID:   copyID(li.ServicesComponentID),
		Status:                status,
		ProcShopFeePercentage: li.ProcShopFeePercentage,
		CreatedBy:             createdBy,
	}
	if li.CANID == nil && li.CAN != nil {
		id := li.CAN.ID
		item.CANID = &id
	}
	if li.DateNeeded != nil {
		d := *li.DateNeeded
		item.DateNeeded = &d
	}
	if li.Persisted != nil {
		item.ID = li.Persisted.ServerID
		item.CreatedBy = li.Persisted.CreatedBy
		item.CreatedAt = li.Persisted.CreatedOn
	}
	return item
}

// ToValidationData shapes a wizard item for the budget-line review rules
func ToValidationData(li draft.LineItem) map[string]any {
	data := map[string]any{
		"amount":      li.Amount,
		"description": li.Description,
	}
	if li.ServicesComponentID != nil {
		data["servicesComponentId"] = *li.ServicesComponentID
	}
	switch {
	case li.CAN != nil:
		data["can"] = map[string]any{"id": li.CAN.ID, "number": li.CAN.Number}
	case li.CANID != nil:
		data["can"] = map[string]any{"id": *li.CANID}
	}
	if li.DateNeeded != nil {
		data["dateNeeded"] = format.DateNeeded(li.DateNeeded)
	}
	return data
}

// ToTotalsDTO converts totals and formats them as currency
func ToTotalsDTO(t draft.Totals) domain.TotalsDTO {
	return domain.TotalsDTO{
		Subtotal:          t.Subtotal,
		Fees:              t.Fees,
		Total:             t.Total,
		SubtotalFormatted: format.Currency(t.Subtotal),
		FeesFormatted:     format.Currency(t.Fees),
		TotalFormatted:    format.Currency(t.Total),
	}
}

// ToWizardDTO builds the wizard view: state, groups and totals. names maps
// services component ids to display names.
func ToWizardDTO(w *session.Wizard, blockerID string, names map[int64]string) domain.WizardDTO {
	totals := draft.ComputeTotals(w.State.Items)
	groups := draft.GroupByCategory(w.State.Items)

	dto := domain.WizardDTO{
		ID:          w.ID,
		AgreementID: w.AgreementID,
		ClientID:    w.ClientID,
		BlockerID:   blockerID,
		State:       w.State,
		Groups:      make([]domain.GroupDTO, 0, len(groups)),
		Totals:      ToTotalsDTO(totals),
		Dirty:       w.State.Dirty(),
	}
	for _, g := range groups {
		gt := draft.ComputeTotals(g.Items)
		name := "TBD"
		if g.ServicesComponentID != nil {
			if n, ok := names[*g.ServicesComponentID]; ok {
				name = n
			}
		}
		dto.Groups = append(dto.Groups, domain.GroupDTO{
			ServicesComponentID: g.ServicesComponentID,
			Name:                name,
			Items:               g.Items,
			Totals:              ToTotalsDTO(gt),
			PercentOfTotal:      format.Percent(gt.Total, totals.Total),
		})
	}
	return dto
}

// ToRoute converts a route DTO
func ToRoute(r domain.RouteDTO) navguard.Route {
	return navguard.Route{Pathname: r.Pathname, Search: r.Search}
}

// ToRouteDTO converts a route
func ToRouteDTO(r navguard.Route) domain.RouteDTO {
	return domain.RouteDTO{Pathname: r.Pathname, Search: r.Search}
}

// ToModalProps converts a modal DTO; callbacks are left unset
func ToModalProps(m domain.ModalDTO) navguard.ModalProps {
	return navguard.ModalProps{
		Heading:        m.Heading,
		Description:    m.Description,
		ConfirmLabel:   m.ConfirmLabel,
		SecondaryLabel: m.SecondaryLabel,
		CancelLabel:    m.CancelLabel,
	}
}

// ToModalDTO converts modal props, dropping callbacks
func ToModalDTO(m navguard.ModalProps) domain.ModalDTO {
	return domain.ModalDTO{
		Heading:        m.Heading,
		Description:    m.Description,
		ConfirmLabel:   m.ConfirmLabel,
		SecondaryLabel: m.SecondaryLabel,
		CancelLabel:    m.CancelLabel,
	}
}

// ToBlockerDTO converts a registration
func ToBlockerDTO(r navguard.Registration) domain.BlockerDTO {
	return domain.BlockerDTO{
		ID:          r.ID,
		ShouldBlock: r.ShouldBlock,
		Modal:       ToModalDTO(r.Modal),
	}
}

// ServerItemID is the wizard item id of a stored budget line
func ServerItemID(id int64) string {
	return "bli-" + strconv.FormatInt(id, 10)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
