package command

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"

	"github.com/keshon/partykit/pkg/commands"
)

var dicePattern = regexp.MustCompile(`^(\d+)d(\d+)$`)

// diceConverter parses classic dice notation like "2d6".
type diceConverter struct{}

type diceRoll struct {
	count int
	sides int
}

func (diceConverter) Convert(_ *commands.Context, argument string) (any, error) {
	m := dicePattern.FindStringSubmatch(argument)
	if m == nil {
		return nil, commands.NewBadArgument(fmt.Sprintf("%q is not dice notation (like 2d6).", argument))
	}
	count, _ := strconv.Atoi(m[1])
	sides, _ := strconv.Atoi(m[2])
	if count < 1 || count > 100 || sides < 2 {
		return nil, commands.NewBadArgument(fmt.Sprintf("%q is out of range.", argument))
	}
	return diceRoll{count: count, sides: sides}, nil
}

func (diceConverter) DisplayName() string { return "dice" }

// Roll rolls dice. The argument is either a plain number of sides or dice
// notation; the two converters form a union.
func Roll() *commands.Command {
	return commands.New("roll",
		func(c *commands.Context) error {
			switch v := c.Arg("dice").(type) {
			case int:
				if v < 2 {
					return c.Reply("A die needs at least 2 sides.")
				}
				return c.Reply(fmt.Sprintf("You rolled %d.", rand.Intn(v)+1))
			case diceRoll:
				total := 0
				for i := 0; i < v.count; i++ {
					total += rand.Intn(v.sides) + 1
				}
				return c.Reply(fmt.Sprintf("You rolled %dd%d: %d.", v.count, v.sides, total))
			default:
				return c.Reply("Nothing to roll.")
			}
		},
		commands.WithDescription("Roll a die or dice notation like 2d6"),
		commands.WithParameters(&commands.Parameter{
			Name:       "dice",
			Default:    "6",
			Converters: []commands.Converter{commands.IntConverter{}, diceConverter{}},
		}),
	)
}
