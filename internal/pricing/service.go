package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/flowohq/storefront-gateway/pkg/flowoapi"
	"github.com/flowohq/storefront-gateway/pkg/logger"

	pkgerrors "github.com/flowohq/storefront-gateway/pkg/errors"
)

// PageSize is the fixed page size of the admin rules table.
const PageSize = 10

type apiClient interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)
}

// ListQuery captures the admin table controls: free-text search, status
// filter and sort order. Filtering happens client-side over the full rule
// set, the way the admin panel does it.
type ListQuery struct {
	Search string
	Status string // all | active | inactive
	Sort   string // priority | name
	Page   int
}

type ListPage struct {
	Rules      []Rule `json:"rules"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// Service edits pricing rules against the remote API. The gateway never
// computes discounted prices; rule application lives entirely server-side.
type Service interface {
	List(ctx context.Context, query ListQuery) (*ListPage, error)
	Create(ctx context.Context, form RuleForm) (*Rule, error)
	Update(ctx context.Context, id int, form RuleForm) (*Rule, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	api  apiClient
	logg *logger.Logger
}

// NewService builds the pricing rule editor backed by the Flowo API client.
func NewService(api apiClient, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &service{api: api, logg: logg}, nil
}

// Validate enforces the editor's submission rules: a rule needs a non-blank
// name and an explicit adjustment value. Zero is a legal value; a missing
// one is not.
func Validate(form RuleForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Rule name is required")
	}
	if form.Value == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "Value is required")
	}
	return nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListPage, error) {
	raw, err := s.api.DoJSON(ctx, http.MethodGet, "/pricing/rules", nil, nil)
	if err != nil {
		return nil, flowoapi.ToError(err)
	}

	var wires []WireRule
	if err := flowoapi.DecodeList(raw, &wires); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid JSON from /pricing/rules")
	}

	rules := make([]Rule, 0, len(wires))
	for _, w := range wires {
		rules = append(rules, FromWire(w))
	}

	rules = filterRules(rules, query)
	sortRules(rules, query.Sort)

	total := len(rules)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &ListPage{
		Rules:      rules[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *service) Create(ctx context.Context, form RuleForm) (*Rule, error) {
	return s.submit(ctx, http.MethodPost, "/pricing/rule", 0, form)
}

func (s *service) Update(ctx context.Context, id int, form RuleForm) (*Rule, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule id is required")
	}
	return s.submit(ctx, http.MethodPut, fmt.Sprintf("/pricing/rule/%d", id), id, form)
}

func (s *service) submit(ctx context.Context, method, path string, id int, form RuleForm) (*Rule, error) {
	if err := Validate(form); err != nil {
		return nil, err
	}

	wire, err := ToWire(ruleFromForm(id, form))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}

	raw, err := s.api.DoJSON(ctx, method, path, nil, wire)
	if err != nil {
		return nil, flowoapi.ToError(err)
	}

	// The backend returns the authoritative record: id assigned on create,
	// any server-side normalization applied on edit.
	var saved WireRule
	if err := flowoapi.DecodeRecord(raw, &saved); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "invalid rule in response")
	}

	rule := FromWire(saved)
	return &rule, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule id is required")
	}
	if _, err := s.api.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("/pricing/rule/%d", id), nil, nil); err != nil {
		return flowoapi.ToError(err)
	}
	return nil
}

func ruleFromForm(id int, form RuleForm) Rule {
	rule := Rule{
		ID:            id,
		Name:          strings.TrimSpace(form.Name),
		Priority:      form.Priority,
		RawType:       form.RawType,
		Type:          form.Type,
		ProductStatus: form.ProductStatus,
		ValidFromDate: form.ValidFromDate,
		ValidToDate:   form.ValidToDate,
		TimeStart:     form.TimeStart,
		TimeEnd:       form.TimeEnd,
		Active:        true,
		ProductID:     form.ProductID,
		FlowerTypeID:  form.FlowerTypeID,
		SpecialDayID:  form.SpecialDayID,
	}
	if form.Value != nil {
		rule.Value = *form.Value
	}
	if form.Active != nil {
		rule.Active = *form.Active
	}
	return rule
}

func filterRules(rules []Rule, query ListQuery) []Rule {
	filtered := rules

	if needle := strings.ToLower(strings.TrimSpace(query.Search)); needle != "" {
		matched := filtered[:0:0]
		for _, r := range filtered {
			if strings.Contains(strings.ToLower(r.Name), needle) ||
				strings.Contains(strings.ToLower(r.ProductStatus), needle) ||
				strings.Contains(strconv.Itoa(r.Priority), needle) {
				matched = append(matched, r)
			}
		}
		filtered = matched
	}

	switch query.Status {
	case "active", "inactive":
		wantActive := query.Status == "active"
		matched := filtered[:0:0]
		for _, r := range filtered {
			if r.Active == wantActive {
				matched = append(matched, r)
			}
		}
		filtered = matched
	}

	return filtered
}

func sortRules(rules []Rule, by string) {
	if by == "name" {
		sort.SliceStable(rules, func(i, j int) bool {
			return rules[i].Name < rules[j].Name
		})
		return
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}
