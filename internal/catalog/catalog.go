// Package catalog holds the static residence dataset served to the client and
// the agent assignments the seeder writes next to it.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"estate_inquiry/internal/domain"
)

var (
	//go:embed residences.json
	residencesJSON []byte
	//go:embed residence.schema.json
	schemaJSON []byte
	//go:embed agents.json
	agentsJSON []byte
)

const schemaURL = "residence.schema.json"

type Catalog struct {
	residences []domain.Residence
	agents     []domain.Agent
}

type agentRecord struct {
	domain.Agent
	Residences []int64 `json:"residences"`
}

// Load validates and decodes the embedded dataset. Residence order is file order.
func Load() (*Catalog, error) {
	return parse(residencesJSON, agentsJSON)
}

func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func parse(residencesRaw, agentsRaw []byte) (*Catalog, error) {
	if err := validate(residencesRaw); err != nil {
		return nil, err
	}

	var rs []domain.Residence
	if err := json.Unmarshal(residencesRaw, &rs); err != nil {
		return nil, fmt.Errorf("catalog: decode residences: %w", err)
	}
	index := make(map[int64]int, len(rs))
	for i, r := range rs {
		if _, dup := index[r.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate residence id %d", r.ID)
		}
		index[r.ID] = i
	}

	var ars []agentRecord
	if err := json.Unmarshal(agentsRaw, &ars); err != nil {
		return nil, fmt.Errorf("catalog: decode agents: %w", err)
	}
	agents := make([]domain.Agent, 0, len(ars))
	seen := make(map[int64]struct{}, len(ars))
	for _, a := range ars {
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate agent id %d", a.ID)
		}
		seen[a.ID] = struct{}{}
		for _, rid := range a.Residences {
			i, ok := index[rid]
			if !ok {
				return nil, fmt.Errorf("catalog: agent %d assigned to unknown residence %d", a.ID, rid)
			}
			if rs[i].AgentID != nil {
				return nil, fmt.Errorf("catalog: residence %d assigned to agents %d and %d", rid, *rs[i].AgentID, a.ID)
			}
			id := a.ID
			rs[i].AgentID = &id
		}
		agents = append(agents, a.Agent)
	}

	return &Catalog{residences: rs, agents: agents}, nil
}

func validate(raw []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("catalog: add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("catalog: compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("catalog: residences are not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("catalog: schema validation failed: %w", err)
	}
	return nil
}

// Residences returns a copy of the dataset in catalog order.
func (c *Catalog) Residences() []domain.Residence {
	out := make([]domain.Residence, len(c.residences))
	copy(out, c.residences)
	return out
}

func (c *Catalog) Agents() []domain.Agent {
	out := make([]domain.Agent, len(c.agents))
	copy(out, c.agents)
	return out
}
