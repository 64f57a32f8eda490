package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/alexivanou/padel-spots-api/internal/service"
	"github.com/spf13/cobra"
)

func searchCmd(a *app) *cobra.Command {
	var (
		club     string
		from     string
		to       string
		free     bool
		maxCost  float64
		skill    string
		near     string
		radiusKm float64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search posted spots",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := &model.SpotFilter{}
			flags := cmd.Flags()

			if club = strings.TrimSpace(club); club != "" {
				filter.ClubName = &club
			}
			if from != "" {
				d, err := service.ParseDate(from)
				if err != nil {
					return err
				}
				filter.DateFrom = &d
			}
			if to != "" {
				d, err := service.ParseDate(to)
				if err != nil {
					return err
				}
				filter.DateTo = &d
			}
			if flags.Changed("free") {
				filter.IsFree = &free
			}
			if flags.Changed("max-cost") {
				if !finite(maxCost) || maxCost < 0 {
					return fmt.Errorf("--max-cost must not be negative")
				}
				filter.MaxCost = &maxCost
			}
			if skill != "" {
				level := model.SkillLevel(strings.ToLower(skill))
				if !level.Valid() {
					return fmt.Errorf("invalid --skill %q (one of %v)", skill, model.SkillLevels)
				}
				filter.SkillLevel = &level
			}
			if near != "" {
				location, err := parseCoordinate(near)
				if err != nil {
					return err
				}
				filter.Location = location
			}
			if flags.Changed("radius") {
				if !finite(radiusKm) || radiusKm <= 0 {
					return fmt.Errorf("--radius must be positive")
				}
				filter.RadiusKm = &radiusKm
			}

			spots, err := a.svc.FindSpots(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if a.outputJSON {
				return a.writeJSON(model.SpotsResponse{Spots: spots, Total: len(spots)})
			}
			return renderSpots(a, spots)
		},
	}

	cmd.Flags().StringVar(&club, "club", "", "Club name contains (case-insensitive)")
	cmd.Flags().StringVar(&from, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&free, "free", false, "Only free spots (--free=false for paid)")
	cmd.Flags().Float64Var(&maxCost, "max-cost", 0, "Maximum cost")
	cmd.Flags().StringVar(&skill, "skill", "", "Skill level of an existing player")
	cmd.Flags().StringVar(&near, "near", "", "Reference point as lat,lng")
	cmd.Flags().Float64Var(&radiusKm, "radius", 0, "Search radius in km (default 10)")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one spot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			spot, err := a.svc.GetSpotByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if spot == nil {
				return fmt.Errorf("spot %d not found", id)
			}

			if a.outputJSON {
				return a.writeJSON(spot)
			}

			writer := tabwriter.NewWriter(a.out, 2, 2, 2, ' ', 0)
			fmt.Fprintf(writer, "ID\t%d\n", spot.ID)
			fmt.Fprintf(writer, "CLUB\t%s\n", spot.ClubName)
			fmt.Fprintf(writer, "WHEN\t%s\n", spot.ScheduledAt.UTC().Format("2006-01-02 15:04"))
			fmt.Fprintf(writer, "COURT\t%s\n", spot.CourtNumber)
			fmt.Fprintf(writer, "REPLACING\t%s\n", spot.PlayerReplaced)
			fmt.Fprintf(writer, "COST\t%s\n", formatCost(spot.Cost, spot.IsFree))
			fmt.Fprintf(writer, "LOCATION\t%s\n", formatLocation(spot.Location))
			for i, p := range spot.ExistingPlayers {
				label := ""
				if i == 0 {
					label = "PLAYERS"
				}
				fmt.Fprintf(writer, "%s\t%s (%s)\n", label, p.Name, p.SkillLevel)
			}
			return writer.Flush()
		},
	}
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a spot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			deleted, err := a.svc.DeleteSpot(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("spot %d not found", id)
			}

			fmt.Fprintf(a.out, "Deleted spot %d\n", id)
			return nil
		},
	}
}

func renderSpots(a *app, spots []model.SpotWithDistance) error {
	if len(spots) == 0 {
		fmt.Fprintln(a.out, "No spots found.")
		return nil
	}

	writer := tabwriter.NewWriter(a.out, 2, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tCLUB\tWHEN\tCOURT\tCOST\tPLAYERS\tDISTANCE")
	for _, s := range spots {
		distance := "-"
		if s.DistanceKm != nil {
			distance = fmt.Sprintf("%.1f km", *s.DistanceKm)
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.ClubName,
			s.ScheduledAt.UTC().Format("2006-01-02 15:04"),
			s.CourtNumber,
			formatCost(s.Cost, s.IsFree),
			len(s.ExistingPlayers),
			distance,
		)
	}
	return writer.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid spot id %q", s)
	}
	return id, nil
}

func parseCoordinate(input string) (*model.Coordinate, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid --near %q (expected lat,lng)", input)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || !finite(lat) || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid latitude in %q", input)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || !finite(lng) || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("invalid longitude in %q", input)
	}
	return &model.Coordinate{Lat: lat, Lng: lng}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatCost(cost float64, free bool) string {
	if free {
		return "free"
	}
	return fmt.Sprintf("%.2f", cost)
}

func formatLocation(c *model.Coordinate) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lng)
}
