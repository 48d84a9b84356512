package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/spf13/cobra"
)

type schemaFunc func(data []byte) (any, *api.ValidationError)

func schema[T any](validate func(raw any) api.Result[T]) schemaFunc {
	return func(data []byte) (any, *api.ValidationError) {
		res := api.Parse(data, validate)
		return res.Value, res.Err
	}
}

var schemas = map[string]schemaFunc{
	"function": schema(api.ValidateFunction),
	"module":   schema(api.ValidateModule),
	"result":   schema(api.ValidateFunctionResult),
	"modules":  schema(api.ValidateModulesResponse),
	"login":    schema(api.ValidateLoginResponse),
	"credits":  schema(api.ValidateCreditsResponse),
	"deploy":   schema(api.ValidateDeployModuleResponse),
	"error":    schema(api.ValidateErrorResponse),
}

func schemaNames() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reportedError marks an error whose details were already printed.
type reportedError struct {
	error
}

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

func NewValidateCommand() *cobra.Command {
	var (
		showClaims bool
		status     int
	)

	cmd := &cobra.Command{
		Use:   "validate <schema> [file|-]",
		Short: "Check a JSON document against a dashboard contract",
		Long: fmt.Sprintf(`Validate a JSON document against one of the contracts exchanged with the
hosting API and print the typed value.

The document is read from the given file, or from stdin when the file is
omitted or "-". Validation stops at the first violation and reports its path
(for example modules[0].functions[2].signature) and the reason.

Available schemas: %s`, strings.Join(schemaNames(), ", ")),
		Example: `  # Validate a module listing
  wasmboard validate modules listing.json

  # Validate a function result from stdin
  echo '{"return_value": [5]}' | wasmboard validate result

  # Decode the claims of a login response
  wasmboard validate login login.json --claims

  # Map an error envelope and its HTTP status to an error code
  wasmboard validate error err.json --status 404`,
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return schemaNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			validate, ok := schemas[args[0]]
			if !ok {
				return fmt.Errorf("unknown schema %q, expected one of: %s", args[0], strings.Join(schemaNames(), ", "))
			}

			source := "-"
			if len(args) == 2 {
				source = args[1]
			}
			data, err := readDocument(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			value, verr := validate(data)
			if verr != nil {
				ui.PrintViolation(verr.Path, verr.Reason)
				return reportedError{verr}
			}

			if err := ui.PrintJSON(value); err != nil {
				return err
			}

			switch v := value.(type) {
			case api.LoginResponse:
				if showClaims {
					return printClaims(v)
				}
			case api.ErrorResponse:
				if status != 0 {
					apiErr := wberrors.NewAPIError(status, v.Error)
					ui.PrintInfo("Code", string(apiErr.Code))
					ui.PrintInfo("Status", fmt.Sprintf("%d", apiErr.Status))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showClaims, "claims", false, "Decode the token of a login response (signature is not verified)")
	cmd.Flags().IntVar(&status, "status", 0, "HTTP status of an error response, used to derive its error code")
	return cmd
}

func readDocument(stdin io.Reader, source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

func printClaims(resp api.LoginResponse) error {
	claims, err := resp.Claims()
	if err != nil {
		return err
	}

	ui.PrintInfo("Subject", claims.Subject)
	ui.PrintInfo("User ID", fmt.Sprintf("%d", claims.UID))
	if claims.ExpiresAt != nil {
		expiry := claims.ExpiresAt.Time
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		ui.PrintInfo("Expires", fmt.Sprintf("%s (%s)", expiry.Format(time.RFC3339), state))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(NewValidateCommand())
}
