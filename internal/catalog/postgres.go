package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/relomatcher/internal/types"
)

// LoadFromPostgres reads the candidate catalog from the countries table.
// It is an alternative to the embedded catalog for deployments that edit
// catalog rows without redeploying; the result goes through the same
// validation as the embedded data.
func LoadFromPostgres(ctx context.Context, databaseURL string) (*Catalog, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	rows, err := pool.Query(ctx,
		`SELECT code, name, short_note,
		        tax_score, cost_of_living_score, income_growth_score,
		        remote_friendly_score, safety_score, lifestyle_score,
		        net_income_percent_typical,
		        cold_climate_score, warm_climate_score, mild_climate_score,
		        english_score, expat_scene_score, social_scene_score, lgbt_score,
		        healthcare_score, public_transport_score,
		        digital_services_score, infrastructure_clean_score
		 FROM countries
		 ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var records []types.CandidateRecord
	for rows.Next() {
		var rec types.CandidateRecord
		if err := rows.Scan(
			&rec.Code, &rec.Name, &rec.ShortNote,
			&rec.TaxScore, &rec.CostOfLivingScore, &rec.IncomeGrowthScore,
			&rec.RemoteFriendlyScore, &rec.SafetyScore, &rec.LifestyleScore,
			&rec.NetIncomePercentTypical,
			&rec.ColdClimateScore, &rec.WarmClimateScore, &rec.MildClimateScore,
			&rec.EnglishScore, &rec.ExpatSceneScore, &rec.SocialSceneScore, &rec.LgbtScore,
			&rec.HealthcareScore, &rec.PublicTransportScore,
			&rec.DigitalServicesScore, &rec.InfrastructureCleanScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read country rows: %w", err)
	}

	return FromRecords(records)
}
