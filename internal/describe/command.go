package describe

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sunkit/sunframes/internal/schema"
)

const (
	commandUseNameConstant            = "describe"
	commandUsageTemplateConstant      = commandUseNameConstant + " [frame]"
	commandExampleConstant            = "sunframes describe helioprojectiveradial"
	commandShortDescriptionConstant   = "Print a registered frame schema contract"
	commandLongDescriptionConstant    = "describe prints the closed-record contract of a registered frame schema as YAML, or lists the registered frame names when no frame is given."
	schemaEncodeErrorTemplateConstant = "failed to render schema: %w"
)

// CommandBuilder assembles the describe command.
type CommandBuilder struct {
	Registry *schema.Registry
}

// Build constructs the describe command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUsageTemplateConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	registry := builder.resolveRegistry()

	if len(arguments) == 0 {
		for _, frameName := range registry.FrameNames() {
			fmt.Fprintln(command.OutOrStdout(), frameName)
		}
		return nil
	}

	frameSchema, lookupError := registry.Lookup(strings.TrimSpace(arguments[0]))
	if lookupError != nil {
		return lookupError
	}

	renderedSchema, encodeError := yaml.Marshal(frameSchema)
	if encodeError != nil {
		return fmt.Errorf(schemaEncodeErrorTemplateConstant, encodeError)
	}

	fmt.Fprint(command.OutOrStdout(), string(renderedSchema))
	return nil
}

func (builder *CommandBuilder) resolveRegistry() *schema.Registry {
	if builder.Registry == nil {
		return schema.NewRegistry()
	}
	return builder.Registry
}
