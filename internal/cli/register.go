package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kivusafe/portal/internal/api/handler"
	"github.com/kivusafe/portal/internal/core/domain"
)

// registrationForm mirrors the web form's rules. The json names match the
// flags so validation messages point at what the user typed.
type registrationForm struct {
	FirstName string `json:"first-name" validate:"required"`
	LastName  string `json:"last-name"  validate:"required"`
	BirthDate string `json:"birth-date" validate:"required,datetime=2006-01-02"`
	Sex       string `json:"sex"        validate:"required,oneof=M F"`
	City      string `json:"city"       validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
}

func RegisterCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			form := registrationForm{}
			form.FirstName, _ = flags.GetString("first-name")
			form.LastName, _ = flags.GetString("last-name")
			form.BirthDate, _ = flags.GetString("birth-date")
			form.Sex, _ = flags.GetString("sex")
			form.City, _ = flags.GetString("city")
			form.Email, _ = flags.GetString("email")
			form.Password, _ = flags.GetString("password")
			form.Sex = strings.ToUpper(strings.TrimSpace(form.Sex))

			if err := handler.NewValidator().Validate(&form); err != nil {
				return fmt.Errorf("invalid registration: %w", err)
			}

			return withApp(cmd.Context(), e, func(ctx context.Context, a *app) error {
				err := a.registration.Register(ctx, domain.Registration{
					FirstName: form.FirstName,
					LastName:  form.LastName,
					BirthDate: form.BirthDate,
					Sex:       form.Sex,
					City:      form.City,
					Email:     form.Email,
					Password:  form.Password,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Registration successful, you can now log in")
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.String("first-name", "", "first name")
	flags.String("last-name", "", "last name")
	flags.String("birth-date", "", "birth date (YYYY-MM-DD)")
	flags.String("sex", "", "M or F")
	flags.String("city", "", "city")
	flags.String("email", "", "email")
	flags.String("password", "", "password, at least 6 characters")

	return cmd
}
