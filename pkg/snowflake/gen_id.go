package snowflake

import (
	"errors"
	"time"

	"github.com/sony/sonyflake"
)

// epoch is the zero point of generated ids. Changing it breaks ordering with
// ids already issued.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var ErrNotCreated = errors.New("snowflake: generator could not be created")

// Generator issues unique, roughly time-ordered 64 bit ids such as receipt numbers.
type Generator struct {
	node *sonyflake.Sonyflake
}

// NewGenerator creates a Generator for machineID. Each running instance
// needs its own machine id.
func NewGenerator(machineID uint16) (*Generator, error) {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: epoch,
		MachineID: func() (uint16, error) { return machineID, nil },
	})
	if sf == nil {
		return nil, ErrNotCreated
	}
	return &Generator{node: sf}, nil
}

// GetID returns the next id.
func (g *Generator) GetID() (uint64, error) {
	return g.node.NextID()
}
