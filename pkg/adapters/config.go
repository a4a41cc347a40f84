package adapters

import (
	"fmt"

	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/models/file"
	"gopkg.in/yaml.v3"
)

// ConditionDecoder turns a raw condition node into a typed condition
type ConditionDecoder interface {
	Decode(node *yaml.Node) (domain.Condition, error)
}

func MapFileConfigToDomain(cfg *file.Config, decoder ConditionDecoder) (*domain.Configuration, error) {
	out := &domain.Configuration{
		Title:   cfg.Title,
		Remote:  cfg.Remote,
		Records: make([]domain.Record, 0, len(cfg.Records)),
	}

	for i, rec := range cfg.Records {
		checks := make([]domain.Check, 0, len(rec.Checks))
		for j, check := range rec.Checks {
			success, err := mapConditions(check.Success, decoder)
			if err != nil {
				return nil, fmt.Errorf("record %d check %d success: %w", i, j, err)
			}
			fail, err := mapConditions(check.Fail, decoder)
			if err != nil {
				return nil, fmt.Errorf("record %d check %d fail: %w", i, j, err)
			}
			checks = append(checks, domain.Check{Success: success, Fail: fail})
		}

		out.Records = append(out.Records, domain.Record{
			Message:    rec.Message,
			Identifier: rec.Identifier,
			Points:     rec.Points,
			Checks:     checks,
		})
	}

	return out, nil
}

func mapConditions(nodes []yaml.Node, decoder ConditionDecoder) ([]domain.Condition, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	conds := make([]domain.Condition, 0, len(nodes))
	for i := range nodes {
		cond, err := decoder.Decode(&nodes[i])
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return conds, nil
}
