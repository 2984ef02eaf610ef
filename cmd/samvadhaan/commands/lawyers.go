package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

var (
	lawyersArea    string
	lawyersCity    string
	lawyersUrgency string
	lawyersBudget  string
	lawyersMax     int
)

var lawyersCmd = &cobra.Command{
	Use:   "lawyers",
	Short: "Discover lawyers for a practice area and city",
	RunE:  runLawyers,
}

func init() {
	lawyersCmd.Flags().StringVar(
		&lawyersArea, "area", "",
		"Practice area (e.g. Property Law)",
	)
	lawyersCmd.Flags().StringVar(
		&lawyersCity, "city", "", "Preferred city (e.g. Delhi)",
	)
	lawyersCmd.Flags().StringVar(
		&lawyersUrgency, "urgency", "Medium",
		"Urgency level: Low, Medium, High",
	)
	lawyersCmd.Flags().StringVar(
		&lawyersBudget, "budget", "Mid",
		"Budget level: Low, Mid, High",
	)
	lawyersCmd.Flags().IntVar(
		&lawyersMax, "max", 10, "Maximum results",
	)

	lawyersCmd.MarkFlagRequired("area")
	lawyersCmd.MarkFlagRequired("city")
}

func runLawyers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	list, err := e.client.GetLawyerRecommendations(
		ctx, api.LawyerCriteria{
			PracticeArea:  lawyersArea,
			PreferredCity: lawyersCity,
			UrgencyLevel:  lawyersUrgency,
			BudgetLevel:   lawyersBudget,
			MaxResults:    lawyersMax,
		},
	)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(list)
	}

	if len(list.Lawyers) == 0 {
		fmt.Println("No lawyers found.")
		return nil
	}

	for i, lawyer := range list.Lawyers {
		fmt.Printf("%d. %s", i+1, lawyer.Name)
		if lawyer.Firm != "" {
			fmt.Printf(" (%s)", lawyer.Firm)
		}
		fmt.Printf(", %s\n", lawyer.Location)
		if lawyer.Website != "" {
			fmt.Printf("   %s\n", lawyer.Website)
		}
	}

	return nil
}
