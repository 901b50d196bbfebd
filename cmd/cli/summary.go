package main

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/iho/gobudget/internal/adapter/http/dto"
)

func summaryCmd() *cobra.Command {
	var sourceID, typeID, from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and transfer totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for key, value := range map[string]string{
				"source_id": sourceID,
				"type_id":   typeID,
				"from":      from,
				"to":        to,
			} {
				if value != "" {
					q.Set(key, value)
				}
			}

			path := "/api/v1/summary"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var summary dto.SummaryResponse
			if err := apiCall(http.MethodGet, path, nil, &summary); err != nil {
				return err
			}
			printJSON(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceID, "source", "", "Only transactions touching this source")
	cmd.Flags().StringVar(&typeID, "type", "", "Only transactions of this type")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "End date, inclusive (YYYY-MM-DD or RFC3339)")
	return cmd
}
