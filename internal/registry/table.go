package registry

import "github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"

// entities is the canonical table of addressable data points. Order matters
// for group listings: entries appear grouped the way the dashboard panels
// present them.
var entities = []models.Entity{
	// policy rates
	{Key: "policy_rate", Name: "CBRT Policy Rate", Group: "rates", TechnicalKey: "policy_rate", Source: "macro", Unit: "%",
		Explain: "The CBRT's one-week repo rate — the benchmark interest rate for Turkey. Higher = tighter monetary policy = stronger TRY but slower growth."},
	{Key: "deposit_rate", Name: "Deposit Rate", Group: "rates", TechnicalKey: "deposit_rate", Source: "macro", Unit: "%",
		Explain: "Interest rate paid on overnight deposits at the central bank. Acts as the floor of the interest rate corridor."},
	{Key: "com_loan", Name: "Commercial Loan Rate", Group: "rates", TechnicalKey: "com_loan", Source: "macro", Unit: "%",
		Explain: "Average interest rate on commercial loans. Shows the real cost of borrowing for Turkish businesses."},
	{Key: "real_rate", Name: "Real Interest Rate", Group: "rates", TechnicalKey: "real_rate", Source: "macro", Unit: "%",
		Explain: "Policy Rate minus Inflation. Positive = monetary tightening is biting. Negative = inflation outpaces rates (loose policy in disguise)."},
	{Key: "real_carry", Name: "Real Carry", Group: "rates", TechnicalKey: "real_carry", Source: "macro", Unit: "%",
		Explain: "The return a foreign investor earns by borrowing in USD and depositing in TRY, adjusted for inflation. High carry attracts hot money into TRY assets."},

	// bonds and risk
	{Key: "tr_2y", Name: "TR 2Y Bond Yield", Group: "bonds", TechnicalKey: "tr_2y", Source: "macro", Unit: "%",
		Explain: "Yield on Turkish 2-year government bonds. Reflects near-term rate expectations and central bank credibility."},
	{Key: "tr_10y", Name: "TR 10Y Bond Yield", Group: "bonds", TechnicalKey: "tr_10y", Source: "equity_risk", Unit: "%",
		Explain: "Yield on Turkish 10-year government bonds. The long-term benchmark — reflects inflation expectations and sovereign risk."},
	{Key: "us_10y", Name: "US 10Y Bond Yield", Group: "bonds", TechnicalKey: "us_10y", Source: "macro", Unit: "%",
		Explain: "The global risk-free rate. When US 10Y rises, capital flows out of EM (including Turkey) back to USD safety."},
	{Key: "risk_premium", Name: "Risk Premium (Spread)", Group: "bonds", TechnicalKey: "risk_premium", Source: "macro", Unit: "bps",
		Explain: "TR 10Y minus US 10Y. Shows how much extra yield investors demand to hold Turkish debt vs US Treasuries. Higher = more perceived risk."},
	{Key: "tr_curve", Name: "Yield Curve (10Y-2Y)", Group: "bonds", TechnicalKey: "tr_curve", Source: "macro", Unit: "bps",
		Explain: "10Y yield minus 2Y yield. Negative (inverted) = market expects rate cuts or recession. Deeply inverted = danger signal."},
	{Key: "cds", Name: "Turkey 5Y CDS", Group: "bonds", TechnicalKey: "cds", Source: "macro", Unit: "bps",
		Explain: "Credit Default Swap spread — the cost of insuring Turkish sovereign debt against default. Higher = market thinks Turkey is riskier."},
	{Key: "erp", Name: "Equity Risk Premium", Group: "bonds", TechnicalKey: "erp", Source: "equity_risk", Unit: "%",
		Explain: "Earnings Yield minus Risk-Free Rate. Positive ERP = stocks are cheap vs bonds. Negative = bonds beat stocks (why take equity risk?)."},
	{Key: "pe", Name: "BIST 100 P/E Ratio", Group: "bonds", TechnicalKey: "pe", Source: "equity_risk", Unit: "x",
		Explain: "Price-to-Earnings ratio of the BIST 100 index. Lower P/E = cheaper market. Turkey historically trades at 5-8x (deep discount vs EM peers at 12-15x)."},

	// inflation
	{Key: "cpi_yoy", Name: "CPI YoY", Group: "inflation", TechnicalKey: "cpi_yoy", Source: "macro", Unit: "%",
		Explain: "Consumer Price Index, year-over-year change. The headline inflation number Turkey reports monthly. Above 50% = hyperinflation territory."},
	{Key: "cpi_mom", Name: "CPI MoM", Group: "inflation", TechnicalKey: "cpi_mom", Source: "macro", Unit: "%",
		Explain: "Monthly inflation rate. Annualize this (×12) for a rough read of current inflation momentum."},
	{Key: "core_cpi", Name: "Core CPI", Group: "inflation", TechnicalKey: "core_cpi", Source: "macro", Unit: "%",
		Explain: "CPI excluding food and energy — shows 'sticky' underlying inflation. If core is high, rate cuts won't come soon."},
	{Key: "ppi_yoy", Name: "PPI YoY", Group: "inflation", TechnicalKey: "ppi_yoy", Source: "macro", Unit: "%",
		Explain: "Producer Price Index YoY. A leading indicator for CPI — today's PPI increase becomes tomorrow's CPI increase as costs pass through."},
	{Key: "ppi_cpi_gap", Name: "PPI-CPI Gap", Group: "inflation", TechnicalKey: "ppi_cpi_gap", Source: "macro", Unit: "pts",
		Explain: "PPI minus CPI. Positive gap = producers are absorbing costs (margins shrinking). Negative gap = cost pressures easing, disinflation signal."},
	{Key: "food_cpi", Name: "Food CPI", Group: "inflation", TechnicalKey: "food_cpi", Source: "macro", Unit: "%",
		Explain: "Food inflation — critical in Turkey where food is 25%+ of the CPI basket. Politically sensitive."},

	// real economy
	{Key: "gdp_growth", Name: "GDP Growth", Group: "economy", TechnicalKey: "gdp_growth", Source: "macro", Unit: "%",
		Explain: "Real GDP growth rate. Turkey's economy is consumption-driven. Positive growth + high inflation = overheating."},
	{Key: "unemployment", Name: "Unemployment Rate", Group: "economy", TechnicalKey: "unemployment", Source: "macro", Unit: "%",
		Explain: "Official unemployment rate. Note: Turkey's broad unemployment (including discouraged workers) is typically 2-3x the official figure."},
	{Key: "current_account", Name: "Current Account", Group: "economy", TechnicalKey: "current_account", Source: "macro", Unit: "M$",
		Explain: "Current account balance. Negative = Turkey imports more than it exports = needs foreign currency inflows = vulnerable to capital flight."},
	{Key: "fx_reserves", Name: "FX Reserves (Net)", Group: "economy", TechnicalKey: "fx_reserves", Source: "macro", Unit: "M$",
		Explain: "Central bank net FX reserves. Turkey's reserves are notoriously low. Below $30B net = danger zone (can't defend TRY)."},
	{Key: "m2_supply", Name: "M2 Money Supply", Group: "economy", TechnicalKey: "m2_supply", Source: "macro", Unit: "B TL",
		Explain: "Broad money supply. Rapid M2 growth = too much money chasing goods = fuel for inflation."},
	{Key: "total_credit", Name: "Total Credit", Group: "economy", TechnicalKey: "total_credit", Source: "macro", Unit: "B TL",
		Explain: "Total bank credit in the economy. Rapid credit growth = overheating risk. CBRT uses 'macroprudential' tools to slow this."},
	{Key: "biz_confidence", Name: "Business Confidence", Group: "economy", TechnicalKey: "biz_confidence", Source: "macro", Unit: "",
		Explain: "Business confidence index. Above 100 = optimistic. Below 100 = pessimistic. A leading indicator for investment and hiring."},
	{Key: "consumer_conf", Name: "Consumer Confidence", Group: "economy", TechnicalKey: "consumer_conf", Source: "macro", Unit: "",
		Explain: "Consumer confidence index. Low confidence = people delay purchases = slower growth."},
	{Key: "rating", Name: "Sovereign Credit Rating", Group: "economy", TechnicalKey: "rating", Source: "macro", Unit: "",
		Explain: "Turkey's sovereign credit rating (Moody's/Fitch/S&P). Currently sub-investment grade ('junk'). Upgrade = massive capital inflows."},

	// cbrt context panel
	{Key: "cbrt_rate", Name: "CBRT Policy Rate", Group: "cbrt", TechnicalKey: "policy_rate", Source: "cbrt", Unit: "%",
		Explain: "Same as Policy Rate, shown in the CBRT context panel. The CBRT's main policy lever."},
	{Key: "cbrt_next", Name: "CBRT Next Meeting", Group: "cbrt", TechnicalKey: "next_meeting", Source: "cbrt", Unit: "",
		Explain: "Date of the next Monetary Policy Committee (MPC) meeting. Markets price in rate decisions weeks before."},

	// equities
	{Key: "bist100", Name: "BIST 100 Index", Group: "equities", TechnicalKey: "XU100.IS", Source: "market", Unit: "pts", Chartable: true,
		Explain: "Borsa Istanbul 100 — Turkey's main stock index. Composed of the 100 largest companies by market cap."},
	{Key: "bist30", Name: "BIST 30 Index", Group: "equities", TechnicalKey: "XU030.IS", Source: "market", Unit: "pts", Chartable: true,
		Explain: "The 30 most liquid stocks on Borsa Istanbul. More concentrated = more volatile. Used for futures trading."},
	{Key: "sp500", Name: "S&P 500", Group: "equities", TechnicalKey: "^GSPC", Source: "market", Unit: "pts", Chartable: true,
		Explain: "The US benchmark index. When S&P drops, EM markets like Turkey typically drop harder (risk-off)."},
	{Key: "dowjones", Name: "Dow Jones", Group: "equities", TechnicalKey: "^DJI", Source: "market", Unit: "pts", Chartable: true,
		Explain: "Dow Jones Industrial Average — 30 large US companies. Price-weighted (not market-cap weighted like S&P)."},
	{Key: "nasdaq", Name: "NASDAQ Composite", Group: "equities", TechnicalKey: "^IXIC", Source: "market", Unit: "pts", Chartable: true,
		Explain: "Tech-heavy US index. Sensitive to interest rates — when rates rise, growth/tech stocks suffer."},
	{Key: "dax", Name: "DAX (Germany)", Group: "equities", TechnicalKey: "^GDAXI", Source: "market", Unit: "pts", Chartable: true,
		Explain: "Germany's main index. Important for Turkey because Germany is Turkey's largest trade partner."},
	{Key: "ftse", Name: "FTSE 100 (UK)", Group: "equities", TechnicalKey: "^FTSE", Source: "market", Unit: "pts", Chartable: true,
		Explain: "UK's main stock index."},
	{Key: "nikkei", Name: "Nikkei 225 (Japan)", Group: "equities", TechnicalKey: "^N225", Source: "market", Unit: "pts", Chartable: true,
		Explain: "Japan's main stock index."},
	{Key: "russell", Name: "Russell 2000", Group: "equities", TechnicalKey: "^RUT", Source: "market", Unit: "pts", Chartable: true,
		Explain: "US small-cap index. Small caps are more sensitive to domestic economic conditions."},

	// fx
	{Key: "usdtry", Name: "USD/TRY", Group: "fx", TechnicalKey: "TRY=X", Source: "market", Unit: "", Chartable: true,
		Explain: "US Dollar to Turkish Lira. The single most important price in Turkey. Drives import costs, inflation expectations, and political stability."},
	{Key: "eurtry", Name: "EUR/TRY", Group: "fx", TechnicalKey: "EURTRY=X", Source: "market", Unit: "", Chartable: true,
		Explain: "Euro to Turkish Lira. Important because Europe is Turkey's largest trading partner."},
	{Key: "dxy", Name: "Dollar Index (DXY)", Group: "fx", TechnicalKey: "DX-Y.NYB", Source: "market", Unit: "", Chartable: true,
		Explain: "US Dollar strength vs a basket of 6 currencies. When DXY rises, EM currencies (including TRY) weaken."},
	{Key: "gbptry", Name: "GBP/TRY", Group: "fx", TechnicalKey: "GBPTRY=X", Source: "market", Unit: "", Chartable: true,
		Explain: "British Pound to Turkish Lira."},

	// commodities
	{Key: "gold", Name: "Gold (XAU/USD)", Group: "commodities", TechnicalKey: "GC=F", Source: "market", Unit: "$", Chartable: true,
		Explain: "Global gold price in USD. Turkish citizens are massive gold buyers — it's a traditional inflation hedge and store of value."},
	{Key: "gram_gold", Name: "Gram Gold (TRY)", Group: "commodities", TechnicalKey: "gram_gold", Source: "market", Unit: "₺", Chartable: true,
		Explain: "Gold price per gram in Turkish Lira (XAU/USD × USDTRY / 31.1035). The price Turkish citizens actually pay at the 'kuyumcu' (jeweler)."},
	{Key: "silver", Name: "Silver", Group: "commodities", TechnicalKey: "SI=F", Source: "market", Unit: "$", Chartable: true,
		Explain: "Silver price. More volatile than gold, with industrial demand component."},
	{Key: "oil_brent", Name: "Brent Crude Oil", Group: "commodities", TechnicalKey: "BZ=F", Source: "market", Unit: "$", Chartable: true,
		Explain: "Brent crude oil price. Turkey imports nearly ALL its oil — rising oil = wider current account deficit = weaker TRY."},
	{Key: "oil_wti", Name: "WTI Crude Oil", Group: "commodities", TechnicalKey: "CL=F", Source: "market", Unit: "$", Chartable: true,
		Explain: "US benchmark crude oil."},
	{Key: "natgas", Name: "Natural Gas", Group: "commodities", TechnicalKey: "NG=F", Source: "market", Unit: "$", Chartable: true,
		Explain: "Henry Hub natural gas price. Turkey imports most of its gas from Russia and Iran."},

	// crypto
	{Key: "btc", Name: "Bitcoin", Group: "crypto", TechnicalKey: "BTC-USD", Source: "market", Unit: "$", Chartable: true,
		Explain: "Bitcoin. Turkey has one of the highest crypto adoption rates globally, partly as a hedge against TRY depreciation."},
	{Key: "eth", Name: "Ethereum", Group: "crypto", TechnicalKey: "ETH-USD", Source: "market", Unit: "$", Chartable: true,
		Explain: "Ethereum. The second largest cryptocurrency by market cap."},

	// composite
	{Key: "scorecard", Name: "Macro Scorecard", Group: "scorecard", TechnicalKey: "composite", Source: "scorecard", Unit: "",
		Explain: "Composite macro score combining yield curve, real carry, PPI-CPI gap, and gold correlation signals."},
	{Key: "gold_corr", Name: "Gold/TRY Correlation", Group: "scorecard", TechnicalKey: "gold_corr", Source: "gold_corr", Unit: "",
		Explain: "3-month correlation between Gram Gold and USDTRY. High correlation (>0.8) = gold is just an FX hedge (Lira fear). Low correlation = gold has independent safe-haven appeal."},
}
