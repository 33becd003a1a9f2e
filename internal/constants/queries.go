package constants

const (
	InsertRunlistVehicle = `
	INSERT INTO runlist_vehicles (
		runlist_id, vin, year, make, model, style, mileage,
		lane, lot, run_number, stock_number, exterior_color,
		interior_color, has_condition_report, grade, mmr_value,
		needs_scraping
	) VALUES (
		:runlist_id, :vin, :year, :make, :model, :style, :mileage,
		:lane, :lot, :run_number, :stock_number, :exterior_color,
		:interior_color, :has_condition_report, :grade, :mmr_value,
		:needs_scraping
	)
	RETURNING id;
	`

	GetVehiclesByRunlistID = `
	SELECT * FROM runlist_vehicles WHERE runlist_id = $1
	`

	UpdateVehicleMatchOutcome = `
	UPDATE runlist_vehicles
	SET matched = $1,
	    match_count = $2,
	    match_strength = $3,
	    match_type = $4,
	    avg_days_to_sell = $5,
	    last_sold_date = $6
	WHERE id = $7
	`

	UpsertHistoricalSale = `
	INSERT INTO historical_sales (
		vin, stock_nbr, date_sold, year, make, model,
		purchase_price, total_repairs, total_cost, sales_price,
		gross_profit, net_profit, days_to_sell, location, purchased_from
	) VALUES (
		:vin, :stock_nbr, :date_sold, :year, :make, :model,
		:purchase_price, :total_repairs, :total_cost, :sales_price,
		:gross_profit, :net_profit, :days_to_sell, :location, :purchased_from
	)
	ON CONFLICT (vin, stock_nbr)
	DO UPDATE SET
		date_sold = EXCLUDED.date_sold,
		year = EXCLUDED.year,
		make = EXCLUDED.make,
		model = EXCLUDED.model,
		purchase_price = EXCLUDED.purchase_price,
		total_repairs = EXCLUDED.total_repairs,
		total_cost = EXCLUDED.total_cost,
		sales_price = EXCLUDED.sales_price,
		gross_profit = EXCLUDED.gross_profit,
		net_profit = EXCLUDED.net_profit,
		days_to_sell = EXCLUDED.days_to_sell,
		location = EXCLUDED.location,
		purchased_from = EXCLUDED.purchased_from
	RETURNING (xmax = 0) AS inserted;
	`

	StatsByVIN = `
	SELECT COUNT(*) AS match_count,
	       AVG(days_to_sell) AS avg_days_to_sell,
	       MAX(date_sold) AS last_sold_date
	FROM historical_sales
	WHERE vin = $1
	`

	StatsByYearMakeModel = `
	SELECT COUNT(*) AS match_count,
	       AVG(days_to_sell) AS avg_days_to_sell,
	       MAX(date_sold) AS last_sold_date
	FROM historical_sales
	WHERE year = $1
	  AND LOWER(make) = LOWER($2)
	  AND LOWER(model) = LOWER($3)
	`

	StatsByYearWindow = `
	SELECT COUNT(*) AS match_count,
	       AVG(days_to_sell) AS avg_days_to_sell,
	       MAX(date_sold) AS last_sold_date
	FROM historical_sales
	WHERE year BETWEEN $1 - $2 AND $1 + $2
	  AND LOWER(make) = LOWER($3)
	  AND LOWER(model) = LOWER($4)
	`

	StatsByMakeModel = `
	SELECT COUNT(*) AS match_count,
	       AVG(days_to_sell) AS avg_days_to_sell,
	       MAX(date_sold) AS last_sold_date
	FROM historical_sales
	WHERE LOWER(make) = LOWER($1)
	  AND LOWER(model) = LOWER($2)
	`

	CountHistoricalSales = `
	SELECT COUNT(*) FROM historical_sales
	`

	GetStatusByApiKey = `
	SELECT * FROM api_keys WHERE api_key = $1
	`
)
