package report

import "strings"

// FormTypes lists the appraisal form types the review surface supports.
var FormTypes = []string{"1004", "1004C", "1004D", "1025", "1073", "2090", "203k-FHA", "2055", "1075", "2095", "1007", "216"}

// States whose boards require extra subject-section fields. The subject
// field list grows "Appraiser's Fee" and "AMC License #" entries right
// after State when the subject property sits in one of these.
var (
	StatesRequiringFeeDisclosure = []string{"AZ", "CO", "CT", "GA", "IL", "LA", "NJ", "NV", "NM", "ND", "OH", "UT", "VA", "VT", "WV"}
	StatesRequiringAMCLicense    = []string{"GA", "IL", "MT", "NJ", "OH", "VT"}
)

// baseSubjectFields is the 1004 subject section in display order.
var baseSubjectFields = []string{
	"Property Address",
	"City",
	"County",
	"State",
	"Zip Code",
	"Borrower",
	"Owner of Public Record",
	"Legal Description",
	"Assessor's Parcel #",
	"Tax Year",
	"R.E. Taxes $",
	"Neighborhood Name",
	"Map Reference",
	"Census Tract",
	"Occupant",
	"Special Assessments $",
	"PUD",
	"HOA $",
	"Property Rights Appraised",
	"Assignment Type",
	"Lender/Client",
	"Address (Lender/Client)",
	"Offered for Sale in Last 12 Months",
	"Report data source(s) used, offering price(s), and date(s)",
}

// SubjectFields returns the subject field list for a property state,
// inserting the state-mandated fee and AMC entries after State where the
// state requires them. The empty state returns the base list.
func SubjectFields(state string) []string {
	fields := make([]string, len(baseSubjectFields))
	copy(fields, baseSubjectFields)
	if state == "" {
		return fields
	}
	insertAt := indexOf(fields, "State") + 1
	if containsFold(StatesRequiringFeeDisclosure, state) {
		fields = insert(fields, insertAt, "Appraiser's Fee")
		insertAt++
	}
	if containsFold(StatesRequiringAMCLicense, state) {
		fields = insert(fields, insertAt, "AMC License #")
	}
	return fields
}

var ContractFields = []string{
	"I did did not analyze the contract for sale for the subject purchase transaction. Explain the results of the analysis of the contract for sale or why the analysis was not performed.",
	"Contract Price $",
	"Date of Contract",
	"Is property seller owner of public record?",
	"Data Source(s)",
	"Is there any financial assistance (loan charges, sale concessions, gift or downpayment assistance, etc.) to be paid by any party on behalf of the borrower?",
	"If Yes, report the total dollar amount and describe the items to be paid",
}

var NeighborhoodFields = []string{
	"Location", "Built-Up", "Growth", "Property Values", "Demand/Supply",
	"Marketing Time", "One-Unit", "2-4 Unit", "Multi-Family", "Commercial", "Other", "Present Land Use for other",
	"one unit housing price(high,low,pred)", "one unit housing age(high,low,pred)",
	"Neighborhood Boundaries", "Neighborhood Description", "Market Conditions:",
}

var SiteFields = []string{
	"Dimensions",
	"Area",
	"Shape",
	"View",
	"Specific Zoning Classification",
	"Zoning Description",
	"Zoning Compliance",
	"Is the highest and best use of subject property as improved (or as proposed per plans and specifications) the present use?",
	"Electricity",
	"Gas",
	"Water",
	"Sanitary Sewer",
	"Street",
	"Alley",
	"FEMA Special Flood Hazard Area",
	"FEMA Flood Zone",
	"FEMA Map #",
	"FEMA Map Date",
	"Are the utilities and off-site improvements typical for the market area? If No, describe",
	"Are there any adverse site conditions or external factors (easements, encroachments, environmental conditions, land uses, etc.)? If Yes, describe",
}

var ImprovementsFields = []string{
	"Units", "One with Accessory Unit", "# of Stories", "Type", "Existing/Proposed/Under Const.",
	"Design (Style)", "Year Built", "Effective Age (Yrs)", "Foundation Type",
	"Basement Area sq.ft.", "Basement Finish %",
	"Evidence of", "Foundation Walls (Material/Condition)",
	"Exterior Walls (Material/Condition)", "Roof Surface (Material/Condition)",
	"Gutters & Downspouts (Material/Condition)", "Window Type (Material/Condition)",
	"Storm Sash/Insulated", "Screens", "Floors (Material/Condition)", "Walls (Material/Condition)",
	"Trim/Finish (Material/Condition)", "Bath Floor (Material/Condition)", "Bath Wainscot (Material/Condition)",
	"Attic", "Heating Type", "Fuel", "Cooling Type",
	"Fireplace(s) #", "Patio/Deck", "Pool", "Woodstove(s) #", "Fence", "Porch", "Other Amenities",
	"Car Storage", "Driveway # of Cars", "Driveway Surface", "Garage # of Cars", "Carport # of Cars",
	"Garage Att./Det./Built-in", "Appliances",
	"Finished area above grade Rooms", "Finished area above grade Bedrooms",
	"Finished area above grade Bath(s)", "Square Feet of Gross Living Area Above Grade",
	"Additional features", "Describe the condition of the property",
	"Are there any physical deficiencies or adverse conditions that affect the livability, soundness, or structural integrity of the property? If Yes, describe",
	"Does the property generally conform to the neighborhood (functional utility, style, condition, use, construction, etc.)?",
	"Does the property generally conform to the neighborhood (functional utility, style, condition, use, construction, etc.)?If Yes, describe",
}

var ReconciliationFields = []string{
	"Indicated Value by: Sales Comparison Approach $",
	"Cost Approach (if developed)",
	"Income Approach (if developed) $",
	"Income Approach (if developed) $ Comment",
	`This appraisal is made "as is", subject to completion per plans and specifications on the basis of a hypothetical condition that the improvements have been completed, subject to the following repairs or alterations on the basis of a hypothetical condition that the repairs or alterations have been completed, or subject to the following required inspection based on the extraordinary assumption that the condition or deficiency does not require alteration or repair:`,
	"opinion of the market value, as defined, of the real property that is the subject of this report is $",
	"as of", "final value",
}

var IncomeApproachFields = []string{
	"Estimated Monthly Market Rent $",
	"X Gross Rent Multiplier  = $",
	"Indicated Value by Income Approach",
	"Summary of Income Approach (including support for market rent and GRM) ",
}

var CostApproachFields = []string{
	"Estimated",
	"Source of cost data",
	"Quality rating from cost service ",
	"Effective date of cost data ",
	"Comments on Cost Approach (gross living area calculations, depreciation, etc.) ",
	"OPINION OF SITE VALUE = $ ................................................",
	"Dwelling",
	"Garage/Carport ",
	"Estimated Remaining Economic Life (HUD and VA only)",
	" Total Estimate of Cost-New  = $ ...................",
	"Depreciation ",
	"Depreciated Cost of Improvements......................................................=$ ",
	"“As-is” Value of Site Improvements......................................................=$",
	"Indicated Value By Cost Approach......................................................=$",
}

var PUDInformationFields = []string{
	"PUD Fees $",
	"PUD Fees (per month)",
	"PUD Fees (per year)",
	"Is the developer/builder in control of the Homeowners' Association (HOA)?",
	"Unit type(s)",
	"Provide the following information for PUDs ONLY if the developer/builder is in control of the HOA and the subject property is an attached dwelling unit.",
	"Legal Name of Project",
	"Total number of phases",
	"Total number of units",
	"Total number of units sold",
	"Total number of units rented",
	"Total number of units for sale",
	"Data source(s)",
	"Was the project created by the conversion of existing building(s) into a PUD?",
	" If Yes, date of conversion",
	"Does the project contain any multi-dwelling units? Yes No Data",
	"Are the units, common elements, and recreation facilities complete?",
	"If No, describe the status of completion.",
	"Are the common elements leased to or by the Homeowners' Association?",
	"If Yes, describe the rental terms and options.",
	"Describe common elements and recreational facilities.",
}

var AppraiserFields = []string{
	"Signature",
	"Name",
	"Company Name",
	"Company Address",
	"Telephone Number",
	"Email Address",
	"Date of Signature and Report",
	"Effective Date of Appraisal",
	"State Certification #",
	"or State License #",
	"or Other (describe)",
	"State #",
	"State",
	"Expiration Date of Certification or License",
	"ADDRESS OF PROPERTY APPRAISED",
	"APPRAISED VALUE OF SUBJECT PROPERTY $",
	"LENDER/CLIENT Name",
	"Lender/Client Company Name",
	"Lender/Client Company Address",
	"Lender/Client Email Address",
}

var MarketConditionsFields = []string{
	"Instructions:", "Seller-(developer, builder, etc.)paid financial assistance prevalent?",
	"Explain in detail the seller concessions trends for the past 12 months (e.g., seller contributions increased from 3% to 5%, increasing use of buydowns, closing costs, condo fees, options, etc.).",
	"Are foreclosure sales (REO sales) a factor in the market?", "If yes, explain (including the trends in listings and sales of foreclosed properties).",
	"Cite data sources for above information.", "Summarize the above information as support for your conclusions in the Neighborhood section of the appraisal report form. If you used any additional information, such as an analysis of pending sales and/or expired and withdrawn listings, to formulate your conclusions, provide both an explanation and support for your conclusions.",
}

var SalesHistoryFields = []string{
	"Date of Prior Sale/Transfer",
	"Price of Prior Sale/Transfer",
	"Data Source(s) for prior sale",
	"Effective Date of Data Source(s) for prior sale",
}

var SalesComparisonAdditionalInfoFields = []string{
	"I did did not research the sale or transfer history of the subject property and comparable sales. If not, explain",
	"My research did did not reveal any prior sales or transfers of the subject property for the three years prior to the effective date of this appraisal.",
	"Data Source(s) for subject property research",
	"My research did did not reveal any prior sales or transfers of the comparable sales for the year prior to the date of sale of the comparable sale.",
	"Data Source(s) for comparable sales research",
	"Analysis of prior sale or transfer history of the subject property and comparable sales",
	"Summary of Sales Comparison Approach",
	"Indicated Value by Sales Comparison Approach $",
}

var InfoOfSalesFields = []string{
	"There are ____ comparable properties currently offered for sale in the subject neighborhood ranging in price from$ ___to $___",
	"There are ___comparable sales in the subject neighborhoodwithin the past twelvemonths ranging in sale price from$___ to $____",
}

var ProjectSiteFields = []string{
	"Topography", "Size", "Density", "View", "Specific Zoning Classification", "Zoning Description",
	"Zoning Compliance", "Is the highest and best use of subject property as improved (or as proposed per plans and specifications) the present use?",
	"Electricity", "Gas", "Water", "Sanitary Sewer", "Street", "Alley", "FEMA Special Flood Hazard Area",
	"FEMA Flood Zone", "FEMA Map #", "FEMA Map Date", "Are the utilities and off-site improvements typical for the market area? If No, describe",
	"Are there any adverse site conditions or external factors (easements, encroachments, environmental conditions, land uses, etc.)? If Yes, describe",
}

var ProjectInfoFields = []string{
	"Data source(s) for project information", "Project Description", "# of Stories",
	"# of Elevators", "Existing/Proposed/Under Construction", "Year Built",
	"Effective Age", "Exterior Walls",
	"Roof Surface", "Total # Parking", "Ratio (spaces/units)", "Type", "Guest Parking", "# of Units", "# of Units Completed",
	"# of Units For Sale", "# of Units Sold", "# of Units Rented", "# of Owner Occupied Units",
	"# of Phases", "# of Planned Phases",
	"Project Primary Occupancy", "Is the developer/builder in control of the Homeowners' Association (HOA)?",
	"Management Group", "Does any single entity (the same individual, investor group, corporation, etc.) own more than 10% of the total units in the project?",
	"Was the project created by the conversion of existing building(s) into a condominium?",
	"If Yes,describe the original use and date of conversion",
	"Are the units, common elements, and recreation facilities complete (including any planned rehabilitation for a condominium conversion)?", "If No, describe",
	"Is there any commercial space in the project?",
	"If Yes, describe and indicate the overall percentage of the commercial space.", "Describe the condition of the project and quality of construction.",
	"Describe the common elements and recreational facilities.", "Are any common elements leased to or by the Homeowners' Association?",
	"If Yes, describe the rental terms and options.", "Is the project subject to a ground rent?",
	"If Yes, $ per year (describe terms and conditions)",
	"Are the parking facilities adequate for the project size and type?", "If No, describe and comment on the effect on value and marketability.",
}

var ProjectAnalysisFields = []string{
	"I did did not analyze the condominium project budget for the current year. Explain the results of the analysis of the budget (adequacy of fees, reserves, etc.), or why the analysis was not performed.",
	"Are there any other fees (other than regular HOA charges) for the use of the project facilities?",
	"If Yes, report the charges and describe.",
	"Compared to other competitive projects of similar quality and design, the subject unit charge appears",
	"If High or Low, describe",
	"Are there any special or unusual characteristics of the project (based on the condominium documents, HOA meetings, or other information) known to the appraiser?",
	"If Yes, describe and explain the effect on value and marketability.",
}

var UnitDescriptionsFields = []string{
	"Unit Charge$", " per month X 12 = $", "per year",
	"Annual assessment charge per year per square feet of gross living area = $",
	"Utilities included in the unit monthly assessment [None/Heat/Air/Conditioning/Electricity/Gas/Water/Sewer/Cable/Other (describe)]",
	"Floor #",
	"# of Levels",
	"Heating Type/Fuel",
	"Central AC/Individual AC/Other (describe)",
	"Fireplace(s) #/Woodstove(s) #/Deck/Patio/Porch/Balcony/Other",
	"Refrigerator/Range/Oven/Disp Microwave/Dishwasher/Washer/Dryer",
	"Floors", "Walls", "Trim/Finish", "Bath Wainscot", "Doors",
	"None/Garage/Covered/Open", "Assigned/Owned", "# of Cars", "Parking Space #",
	"Finished area above grade contains:", "Rooms", "Bedrooms", "Bath(s)", "Square Feet of Gross Living Area Above Grade",
	"Are the heating and cooling for the individual units separately metered?", "If No, describe and comment on compatibility to other projects in the market area.",
	"Additional features (special energy efficient items, etc.)",
	"Describe the condition of the property (including needed repairs, deterioration, renovations, remodeling, etc.)",
	"Are there any physical deficiencies or adverse conditions that affect the livability, soundness, or structural integrity of the property? ", "If Yes, describe",
	"Does the property generally conform to the neighborhood (functional utility, style, condition, use, construction, etc.)?", "If No, describe",
}

var PriorSaleHistoryFields = []string{
	"Prior Sale History: I did did not research the sale or transfer history of the subject property and comparable sales",
	"Prior Sale History: My research did did not reveal any prior sales or transfers of the subject property for the three years prior to the effective date of this appraisal",
	"Prior Sale History: Data source(s) for subject",
	"Prior Sale History: My research did did not reveal any prior sales or transfers of the comparable sales for the year prior to the date of sale of the comparable sale",
	"Prior Sale History: Data source(s) for comparables",
	"Prior Sale History: Report the results of the research and analysis of the prior sale or transfer history of the subject property and comparable sales",
	"Prior Sale History: Date of Prior Sale/Transfer",
	"Prior Sale History: Price of Prior Sale/Transfer",
	"Prior Sale History: Data Source(s) for prior sale/transfer",
	"Prior Sale History: Effective Date of Data Source(s)",
	"Prior Sale History: Analysis of prior sale or transfer history of the subject property and comparable sales",
}

var RentScheduleReconciliationFields = []string{
	"Comments on market data, including the range of rents for single family properties, an estimate of vacancy for single family rental properties, the general trend of rents and vacancy, and support for the above adjustments. (Rent concessions should be adjusted to the market, not to the subject property.)",
	"Final Reconciliation of Market Rent:",
	"I (WE) ESTIMATE THE MONTHLY MARKET RENT OF THE SUBJECT AS OF",
	"TO BE $",
}

var RentScheduleRowFields = []string{
	"Address",
	"Proximity to Subject",
	"Date Lease Begins",
	"Date Lease Expires",
	"Monthly Rental",
	"Less: Utilities",
	"Furniture",
	"Adjusted Monthly Rent",
	"Data Source",
	"Rent",
	"Concessions",
	"Location/View",
	"Design and Appeal",
	"Age/Condition",
	"Room Count Total",
	"Room Count Bdrms",
	"Room Count Baths",
	"Gross Living Area",
	"Other (e.g., basement, etc.)",
	"Other:",
	"Net Adj. (total)",
	"Indicated Monthly Market Rent",
}

// ComparableSales names the sales-grid comparable sections.
var ComparableSales = []string{
	"COMPARABLE SALE #1",
	"COMPARABLE SALE #2",
	"COMPARABLE SALE #3",
	"COMPARABLE SALE #4",
	"COMPARABLE SALE #5",
	"COMPARABLE SALE #6",
	"COMPARABLE SALE #7",
	"COMPARABLE SALE #8",
	"COMPARABLE SALE #9",
}

// ComparableRents names the rent-schedule comparable sections.
var ComparableRents = []string{
	"COMPARABLE RENT #1",
	"COMPARABLE RENT #2",
	"COMPARABLE RENT #3",
	"COMPARABLE RENT #4",
	"COMPARABLE RENT #5",
	"COMPARABLE RENT #6",
	"COMPARABLE RENT #7",
}

// GridRow describes one sales-grid attribute: the comparable field key,
// its paired dollar-adjustment key, and the subject-side key when it
// differs from the comparable key.
type GridRow struct {
	Label           string
	ValueKey        string
	AdjustmentKey   string
	SubjectValueKey string
}

var SalesGridRows = []GridRow{
	{Label: "Address", ValueKey: "Address", SubjectValueKey: "Property Address"},
	{Label: "Proximity to Subject", ValueKey: "Proximity to Subject"},
	{Label: "Sale Price", ValueKey: "Sale Price"},
	{Label: "Sale Price/GLA", ValueKey: "Sale Price/Gross Liv. Area"},
	{Label: "Data Source(s)", ValueKey: "Data Source(s)"},
	{Label: "Verification Source(s)", ValueKey: "Verification Source(s)"},
	{Label: "Sale or Financing Concessions", ValueKey: "Sale or Financing Concessions", AdjustmentKey: "Sale or Financing Concessions Adjustment"},
	{Label: "Date of Sale/Time", ValueKey: "Date of Sale/Time", AdjustmentKey: "Date of Sale/Time Adjustment"},
	{Label: "Location", ValueKey: "Location", AdjustmentKey: "Location Adjustment"},
	{Label: "Leasehold/Fee Simple", ValueKey: "Leasehold/Fee Simple", AdjustmentKey: "Leasehold/Fee Simple Adjustment"},
	{Label: "Site", ValueKey: "Site", AdjustmentKey: "Site Adjustment"},
	{Label: "View", ValueKey: "View", AdjustmentKey: "View Adjustment"},
	{Label: "Design (Style)", ValueKey: "Design (Style)", AdjustmentKey: "Design (Style) Adjustment"},
	{Label: "Quality of Construction", ValueKey: "Quality of Construction", AdjustmentKey: "Quality of Construction Adjustment"},
	{Label: "Actual Age", ValueKey: "Actual Age", AdjustmentKey: "Actual Age Adjustment"},
	{Label: "Condition", ValueKey: "Condition", AdjustmentKey: "Condition Adjustment"},
	{Label: "Total Rooms", ValueKey: "Total Rooms"},
	{Label: "Bedrooms", ValueKey: "Bedrooms", AdjustmentKey: "Bedrooms Adjustment"},
	{Label: "Baths", ValueKey: "Baths", AdjustmentKey: "Baths Adjustment"},
	{Label: "Gross Living Area", ValueKey: "Gross Living Area", AdjustmentKey: "Gross Living Area Adjustment"},
	{Label: "Basement & Finished", ValueKey: "Basement & Finished Rooms Below Grade", AdjustmentKey: "Basement & Finished Rooms Below Grade Adjustment"},
	{Label: "Functional Utility", ValueKey: "Functional Utility", AdjustmentKey: "Functional Utility Adjustment"},
	{Label: "Heating/Cooling", ValueKey: "Heating/Cooling", AdjustmentKey: "Heating/Cooling Adjustment"},
	{Label: "Energy Efficient Items", ValueKey: "Energy Efficient Items", AdjustmentKey: "Energy Efficient Items Adjustment"},
	{Label: "Garage/Carport", ValueKey: "Garage/Carport", AdjustmentKey: "Garage/Carport Adjustment"},
	{Label: "Porch/Patio/Deck", ValueKey: "Porch/Patio/Deck", AdjustmentKey: "Porch/Patio/Deck Adjustment"},
	{Label: "Net Adjustment (Total)", ValueKey: "Net Adjustment (Total)"},
	{Label: "Adjusted Sale Price", ValueKey: "Adjusted Sale Price of Comparable"},
}

// GridRowFor returns the grid row whose value or adjustment key matches
// the field label, along with whether the label names the adjustment side.
func GridRowFor(field string) (GridRow, bool, bool) {
	for _, row := range SalesGridRows {
		if row.ValueKey == field {
			return row, false, true
		}
		if row.AdjustmentKey != "" && row.AdjustmentKey == field {
			return row, true, true
		}
	}
	return GridRow{}, false, false
}

// FieldTarget pairs a display section title with a field's document path,
// used by the missing-field scan in the aggregate error report.
type FieldTarget struct {
	Section string
	Field   string
	Path    FieldPath
}

// MissingFieldTargets enumerates every field the extraction is expected
// to populate, grouped under its display section. The subject state
// drives the dynamic appraiser-fee/AMC entries.
func MissingFieldTargets(state string) []FieldTarget {
	groups := []struct {
		section string
		key     string
		fields  []string
	}{
		{"Subject", "Subject", SubjectFields(state)},
		{"Contract", "CONTRACT", ContractFields},
		{"Neighborhood", "NEIGHBORHOOD", NeighborhoodFields},
		{"Site", "SITE", SiteFields},
		{"Improvements", "IMPROVEMENTS", ImprovementsFields},
		{"Reconciliation", "RECONCILIATION", ReconciliationFields},
		{"Income Approach", "INCOME_APPROACH", IncomeApproachFields},
		{"Cost Approach", "COST_APPROACH", CostApproachFields},
		{"PUD Information", "PUD_INFO", PUDInformationFields},
		{"Appraiser/Certification", "CERTIFICATION", AppraiserFields},
		{"Market Conditions", "MARKET_CONDITIONS", MarketConditionsFields},
		{"Sales History", "SALES_HISTORY", SalesHistoryFields},
		{"Sales Comparison Additional Info", "SALES_TRANSFER", SalesComparisonAdditionalInfoFields},
		{"Info of Sales", "INFO_OF_SALES", InfoOfSalesFields},
		{"Project Site", "PROJECT_SITE", ProjectSiteFields},
		{"Project Information", "PROJECT_INFO", ProjectInfoFields},
		{"Project Analysis", "PROJECT_ANALYSIS", ProjectAnalysisFields},
		{"Unit Descriptions", "UNIT_DESCRIPTIONS", UnitDescriptionsFields},
		{"Prior Sale History", "PRIOR_SALE_HISTORY", PriorSaleHistoryFields},
	}

	var targets []FieldTarget
	for _, g := range groups {
		for _, f := range g.fields {
			targets = append(targets, FieldTarget{
				Section: g.section,
				Field:   f,
				Path:    FieldPath{g.key, f},
			})
		}
	}
	return targets
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func insert(list []string, at int, s string) []string {
	if at < 0 || at > len(list) {
		return append(list, s)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:at]...)
	out = append(out, s)
	return append(out, list[at:]...)
}
