package appraisal

import (
	"apprev/internal/report"
	"apprev/internal/validator"
)

// rule is shorthand for a field-scoped rule.
func rule(name string, check validator.CheckFunc) validator.Rule {
	return validator.Rule{Name: name, Check: check}
}

// rowRule is shorthand for a row-scoped rule.
func rowRule(name string, row validator.RowFunc) validator.Rule {
	return validator.Rule{Name: name, Row: row}
}

// BuildRegistry assembles the full rule registry for the 1004-family
// forms. Bulk not-blank groups go in first; field-specific registrations
// follow and replace the bulk entry for their label, so a field needing
// both lists the not-blank rule explicitly. Rule order within a list is
// resolution order.
func BuildRegistry() *validator.Registry {
	r := validator.NewRegistry()

	registerNotBlankGroups(r)
	registerSubjectRules(r)
	registerContractRules(r)
	registerNeighborhoodRules(r)
	registerSiteRules(r)
	registerImprovementsRules(r)
	registerSalesGridRules(r)
	registerSalesHistoryRules(r)
	registerReconciliationRules(r)
	registerApproachRules(r)
	registerCertificationRules(r)
	registerProjectRules(r)
	registerRentScheduleRules(r)
	register1004DRules(r)

	return r
}

func registerNotBlankGroups(r *validator.Registry) {
	groups := []struct {
		name   string
		fields []string
	}{
		{"contract_not_blank", report.ContractFields},
		{"neighborhood_not_blank", report.NeighborhoodFields},
		{"site_not_blank", report.SiteFields},
		{"improvements_not_blank", report.ImprovementsFields},
		{"reconciliation_not_blank", report.ReconciliationFields},
		{"cost_approach_not_blank", report.CostApproachFields},
		{"income_approach_not_blank", report.IncomeApproachFields},
		{"pud_information_not_blank", report.PUDInformationFields},
		{"appraiser_not_blank", report.AppraiserFields},
		{"market_conditions_not_blank", report.MarketConditionsFields},
		{"sales_history_not_blank", report.SalesHistoryFields},
		{"info_of_sales_not_blank", report.InfoOfSalesFields},
		{"project_site_not_blank", report.ProjectSiteFields},
		{"project_info_not_blank", report.ProjectInfoFields},
		{"project_analysis_not_blank", report.ProjectAnalysisFields},
		{"unit_descriptions_not_blank", report.UnitDescriptionsFields},
		{"prior_sale_history_not_blank", report.PriorSaleHistoryFields},
	}
	for _, g := range groups {
		r.BulkRegister(g.fields, notBlankRule(g.name, g.fields))
	}
}

func registerSubjectRules(r *validator.Registry) {
	subjectBlank := rule("subject_not_blank", CheckSubjectFieldsNotBlank)

	for _, f := range subjectNotBlankFields {
		r.Register(f, subjectBlank)
	}
	r.Register("Property Address", subjectBlank, rule("subject_address_consistency", CheckSubjectAddressConsistency))
	r.Register("Tax Year", rule("tax_year", CheckTaxYear))
	r.Register("R.E. Taxes $", rule("re_taxes", CheckRETaxes))
	r.Register("Special Assessments $", rule("special_assessments", CheckSpecialAssessments))
	r.Register("PUD", rule("pud_hoa_consistency", CheckPUDHOAConsistency))
	r.Register("HOA $", rule("pud_hoa_consistency", CheckPUDHOAConsistency))
	r.Register("Occupant", rule("occupant_choice", CheckOccupant))
	r.Register("Property Rights Appraised", rule("property_rights", CheckPropertyRights))
	r.Register("Assignment Type", rule("assignment_type", CheckAssignmentTypeConsistency))
	r.Register("Lender/Client", subjectBlank, rule("lender_name_consistency", CheckLenderNameConsistency))
	r.Register("Address (Lender/Client)", subjectBlank, rule("lender_address_consistency", CheckLenderAddressConsistency))
	r.Register("Offered for Sale in Last 12 Months", rule("offered_for_sale", CheckOfferedForSale))
	r.Register("Report data source(s) used, offering price(s), and date(s)", rule("offered_for_sale", CheckOfferedForSale))
	r.Register("Appraiser's Fee", rule("state_fee_disclosure", CheckAppraisersFee))
	r.Register("AMC License #", rule("state_amc_license", CheckAMCLicense))
}

func registerContractRules(r *validator.Registry) {
	mandatory := rule("contract_mandatory", CheckContractFieldsMandatory)

	r.Register(contractAnalysisField, mandatory, rule("contract_analysis", CheckContractAnalysisConsistency))
	r.Register("Contract Price $", mandatory)
	r.Register("Date of Contract", mandatory)
	r.Register("Data Source(s)", mandatory)
	r.Register("Is property seller owner of public record?", YesNoOnlyRule("Is property seller owner of public record?"))
	r.Register(financialAssistanceField,
		YesNoOnlyRule(financialAssistanceField),
		rule("financial_assistance", CheckFinancialAssistanceInconsistency))
	r.Register(financialAssistanceDetailField, rule("financial_assistance", CheckFinancialAssistanceInconsistency))
}

func registerNeighborhoodRules(r *validator.Registry) {
	for f := range neighborhoodChoices {
		r.Register(f, rule("neighborhood_choice", CheckNeighborhoodChoice))
	}
	for _, f := range landUseFields {
		r.Register(f, rule("land_use_percentages", CheckLandUsePercentages))
	}
	r.Register("one unit housing price(high,low,pred)", rule("housing_triple", CheckHousingTriple))
	r.Register("one unit housing age(high,low,pred)", rule("housing_triple", CheckHousingTriple))
	r.Register("Neighborhood Boundaries", rule("neighborhood_boundaries", CheckNeighborhoodBoundaries))
}

func registerSiteRules(r *validator.Registry) {
	fema := rule("fema_consistency", CheckFEMAConsistency)

	r.Register("Zoning Compliance", rule("zoning_compliance", CheckZoningCompliance))
	for _, f := range []string{"FEMA Special Flood Hazard Area", "FEMA Flood Zone", "FEMA Map #", "FEMA Map Date"} {
		r.Register(f, fema)
	}
	for _, f := range utilityFields {
		r.Register(f, rule("utility", CheckUtility))
	}
	r.Register("Is the highest and best use of subject property as improved (or as proposed per plans and specifications) the present use?",
		rule("highest_and_best_use", CheckHighestAndBestUse))
	r.Register("Are the utilities and off-site improvements typical for the market area? If No, describe",
		YesNoCommentRule("Are the utilities and off-site improvements typical for the market area? If No, describe", "No"))
	r.Register("Are there any adverse site conditions or external factors (easements, encroachments, environmental conditions, land uses, etc.)? If Yes, describe",
		YesNoCommentRule("Are there any adverse site conditions or external factors (easements, encroachments, environmental conditions, land uses, etc.)? If Yes, describe", "Yes"))
}

func registerImprovementsRules(r *validator.Registry) {
	basement := rule("basement_consistency", CheckBasementConsistency)
	yearAge := rule("year_built_effective_age", CheckYearBuiltEffectiveAge)
	rooms := rule("room_counts", CheckRoomCounts)

	for _, f := range materialConditionFields {
		r.Register(f, rule("material_condition", CheckMaterialCondition))
	}
	r.Register("Existing/Proposed/Under Const.", rule("construction_status", CheckConstructionStatus))
	r.Register("Foundation Type", basement)
	r.Register("Basement Area sq.ft.", basement)
	r.Register("Basement Finish %", basement)
	r.Register("Year Built", yearAge)
	r.Register("Effective Age (Yrs)", yearAge)
	r.Register("Car Storage", rule("car_storage", CheckCarStorage))
	r.Register("Fuel", rule("heating_fuel", CheckHeatingFuel))
	r.Register("Finished area above grade Rooms", rooms)
	r.Register("Finished area above grade Bedrooms", rooms)
	r.Register("Finished area above grade Bath(s)", rooms)
	r.Register("Square Feet of Gross Living Area Above Grade", rooms)
	r.Register("Are there any physical deficiencies or adverse conditions that affect the livability, soundness, or structural integrity of the property? If Yes, describe",
		YesNoCommentRule("Are there any physical deficiencies or adverse conditions that affect the livability, soundness, or structural integrity of the property? If Yes, describe", "Yes"))
	r.Register("Does the property generally conform to the neighborhood (functional utility, style, condition, use, construction, etc.)?",
		YesNoCommentRule("Does the property generally conform to the neighborhood (functional utility, style, condition, use, construction, etc.)?", "No"))
}

// registerAfter appends rules to whatever the label already carries.
// Grid value keys like "Location" and "View" double as section fields
// whose earlier registrations must survive.
func registerAfter(r *validator.Registry, field string, rules ...validator.Rule) {
	r.Register(field, append(append([]validator.Rule{}, r.Lookup(field)...), rules...)...)
}

func registerSalesGridRules(r *validator.Registry) {
	adjustment := GridAdjustmentRule()

	for _, row := range report.SalesGridRows {
		if row.AdjustmentKey == "" {
			continue
		}
		registerAfter(r, row.ValueKey, adjustment)
		registerAfter(r, row.AdjustmentKey, adjustment)
	}
	r.Register("Net Adjustment (Total)", rowRule("net_adjustment", CheckNetAdjustment))
	r.Register("Adjusted Sale Price of Comparable", rowRule("adjusted_sale_price", CheckAdjustedSalePrice))
	r.Register("Proximity to Subject",
		rowRule("rent_proximity", CheckRentProximity),
		rowRule("sale_proximity", CheckSaleProximity))

	research := rule("research_statement", CheckResearchStatement)
	for _, f := range []string{
		"I did did not research the sale or transfer history of the subject property and comparable sales. If not, explain",
		"My research did did not reveal any prior sales or transfers of the subject property for the three years prior to the effective date of this appraisal.",
		"My research did did not reveal any prior sales or transfers of the comparable sales for the year prior to the date of sale of the comparable sale.",
	} {
		r.Register(f, research)
	}
}

func registerSalesHistoryRules(r *validator.Registry) {
	pair := rule("prior_sale_pair", CheckPriorSalePair)

	r.Register("Date of Prior Sale/Transfer",
		rule("subject_prior_sale_date", CheckSubjectPriorSaleDate),
		rowRule("comp_prior_sale_date", CheckCompPriorSaleDate))
	r.Register("Price of Prior Sale/Transfer", pair)
	r.Register("Data Source(s) for prior sale", pair)

	research := rule("research_statement", CheckResearchStatement)
	r.Register("Prior Sale History: I did did not research the sale or transfer history of the subject property and comparable sales", research)
	r.Register("Prior Sale History: My research did did not reveal any prior sales or transfers of the subject property for the three years prior to the effective date of this appraisal", research)
	r.Register("Prior Sale History: My research did did not reveal any prior sales or transfers of the comparable sales for the year prior to the date of sale of the comparable sale", research)
}

func registerReconciliationRules(r *validator.Registry) {
	r.Register("as of",
		notBlankRule("reconciliation_not_blank", report.ReconciliationFields),
		rule("as_of_date", CheckAsOfDateConsistency))
	r.Register(marketValueOpinionField, rule("final_value_consistency", CheckFinalValueConsistency))
	r.Register("Income Approach (if developed) $ Comment", rule("income_approach_comment", CheckIncomeApproachComment))

	// The final value collects the consistency and bracketing checks,
	// replacing the earlier bulk not-blank entry: a blank final value is
	// already an inconsistency.
	r.Register("final value",
		rule("final_value_consistency", CheckFinalValueConsistency),
		rule("final_value_bracketing", CheckFinalValueBracketing))
}

func registerApproachRules(r *validator.Registry) {
	costBlank := notBlankRule("cost_approach_not_blank", report.CostApproachFields)
	incomeBlank := notBlankRule("income_approach_not_blank", report.IncomeApproachFields)

	r.Register("Indicated Value By Cost Approach......................................................=$",
		costBlank, rule("cost_approach_arithmetic", CheckCostApproachArithmetic))
	r.Register("Indicated Value by Income Approach",
		incomeBlank, rule("grm_arithmetic", CheckGRMArithmetic))
}

func registerCertificationRules(r *validator.Registry) {
	appraiserBlank := rule("appraiser_not_blank", CheckAppraiserFieldsNotBlank)

	r.Register("Lender/Client Company Name", appraiserBlank, rule("lender_name_consistency", CheckLenderNameConsistency))
	r.Register("Lender/Client Company Address", appraiserBlank, rule("lender_address_consistency", CheckLenderAddressConsistency))
	r.Register("Expiration Date of Certification or License", rule("date_not_in_past", CheckDateNotInPast))
	r.Register("Date of Signature and Report", appraiserBlank, rule("signature_date_order", CheckSignatureDateOrder))
	r.Register("APPRAISED VALUE OF SUBJECT PROPERTY $", rule("appraised_value_consistency", CheckAppraisedValueConsistency))
	r.Register("State Certification #", appraiserBlank, rule("license_number_consistency", CheckLicenseNumberConsistency))
	r.Register("or State License #", appraiserBlank, rule("license_number_consistency", CheckLicenseNumberConsistency))
	r.Register("ADDRESS OF PROPERTY APPRAISED", appraiserBlank, rule("subject_address_consistency", CheckSubjectAddressConsistency))
}

func registerProjectRules(r *validator.Registry) {
	counts := rule("project_unit_counts", CheckProjectUnitCounts)
	commercial := rule("commercial_space", CheckCommercialSpace)

	for _, f := range projectUnitCountFields {
		r.Register(f, counts)
	}
	r.Register("Is there any commercial space in the project?", commercial)
	r.Register("If Yes, describe and indicate the overall percentage of the commercial space.", commercial)
	r.Register("Is the developer/builder in control of the Homeowners' Association (HOA)?",
		YesNoOnlyRule("Is the developer/builder in control of the Homeowners' Association (HOA)?"))
	r.Register("Unit Charge$", rule("unit_charge_arithmetic", CheckUnitChargeArithmetic))
	r.Register("per year", rule("unit_charge_arithmetic", CheckUnitChargeArithmetic))
	r.Register("Compared to other competitive projects of similar quality and design, the subject unit charge appears",
		rule("unit_charge_appearance", CheckUnitChargeAppearance))
	r.Register("I did did not analyze the condominium project budget for the current year. Explain the results of the analysis of the budget (adequacy of fees, reserves, etc.), or why the analysis was not performed.",
		rule("research_statement", CheckResearchStatement))
}

func registerRentScheduleRules(r *validator.Registry) {
	lease := rowRule("lease_dates", CheckLeaseDates)

	r.Register("Adjusted Monthly Rent", rowRule("adjusted_monthly_rent", CheckAdjustedMonthlyRent))
	r.Register("Date Lease Begins", lease)
	r.Register("Date Lease Expires", lease)
	r.Register("TO BE $",
		notBlankRule("rent_reconciliation_not_blank", report.RentScheduleReconciliationFields),
		rule("estimated_market_rent", CheckEstimatedMarketRent))
}

func register1004DRules(r *validator.Registry) {
	dates := rule("form_1004d_dates", Check1004DDates)

	r.Register(form1004DEffectiveDate, dates)
	r.Register(form1004DInspection, dates)
}
