// Package strategy holds the fixed catalog of appeal angles, the rule-based
// situation classifier and the evidence strength evaluator. Everything here
// is pure computation over immutable reference data.
package strategy

// AppealAngle represents one appeal strategy archetype
type AppealAngle struct {
	Key                string   `json:"key"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	KeyQuestions       []string `json:"key_questions"`
	StrengthIndicators []string `json:"strength_indicators"`
	RequiredEvidence   []string `json:"required_evidence"`
}

// angleOrder fixes the catalog iteration order. Extending the catalog means
// appending a new entry here and in angles below, never mutating existing ones.
var angleOrder = []string{
	"procedural_error",
	"signage_issues",
	"meter_malfunction",
	"emergency_circumstances",
	"payment_display_issue",
	"zone_confusion",
	"first_time_leniency",
	"disability_accommodation",
	"time_discrepancy",
}

var angles = map[string]*AppealAngle{
	"procedural_error": {
		Key:         "procedural_error",
		Name:        "Procedural Error",
		Description: "Citation was issued incorrectly or does not follow proper procedures",
		KeyQuestions: []string{
			"Was the citation securely attached to your vehicle?",
			"Are all details on the citation accurate (date, time, location, vehicle info)?",
			"Did the officer follow proper procedures?",
			"Is the citation number valid and legible?",
		},
		StrengthIndicators: []string{
			"Incorrect vehicle information",
			"Wrong date or time",
			"Citation not properly attached",
			"Missing required information",
			"Officer signature missing",
		},
		RequiredEvidence: []string{
			"Photos of the citation showing errors",
			"Vehicle registration showing correct information",
			"Photos showing improper attachment if applicable",
		},
	},
	"signage_issues": {
		Key:         "signage_issues",
		Name:        "Inadequate or Confusing Signage",
		Description: "Parking restrictions were not clearly posted or signs were confusing",
		KeyQuestions: []string{
			"Were there clear signs indicating the parking restriction?",
			"Were the signs visible and unobstructed?",
			"Were there conflicting signs in the area?",
			"Was the sign text legible and in compliance with local standards?",
		},
		StrengthIndicators: []string{
			"No sign visible from parking spot",
			"Sign obstructed by trees/objects",
			"Conflicting information from multiple signs",
			"Faded or illegible signs",
			"Sign not meeting MUTCD standards",
		},
		RequiredEvidence: []string{
			"Photos showing parking spot and nearby signage",
			"Photos of any obstructions or damaged signs",
			"Photos showing perspective from driver's position",
			"Multiple angles showing sign placement",
		},
	},
	"meter_malfunction": {
		Key:         "meter_malfunction",
		Name:        "Meter or Payment System Malfunction",
		Description: "The parking meter or payment system was not working properly",
		KeyQuestions: []string{
			"Did you attempt to pay for parking?",
			"Was the meter displaying any error messages?",
			"Did you report the malfunction?",
			"Do you have proof of attempted payment?",
		},
		StrengthIndicators: []string{
			"Meter displayed 'out of order'",
			"Payment transaction failed but money charged",
			"Receipt showing payment attempt",
			"Multiple users reporting same issue",
		},
		RequiredEvidence: []string{
			"Photos of meter showing malfunction",
			"Payment receipts or transaction records",
			"Credit card statement showing charge",
			"Report filed about meter malfunction",
		},
	},
	"emergency_circumstances": {
		Key:         "emergency_circumstances",
		Name:        "Emergency or Extenuating Circumstances",
		Description: "Parking violation occurred due to an emergency situation",
		KeyQuestions: []string{
			"What was the nature of the emergency?",
			"Do you have documentation of the emergency?",
			"Was this your first parking violation?",
			"How long was the vehicle parked?",
		},
		StrengthIndicators: []string{
			"Medical emergency",
			"Vehicle breakdown",
			"Avoiding accident",
			"Personal safety concern",
			"Family emergency",
		},
		RequiredEvidence: []string{
			"Medical records or doctor's note",
			"Police report if applicable",
			"Tow truck receipt or mechanic report",
			"Photos showing vehicle condition",
			"Witness statements if available",
		},
	},
	"payment_display_issue": {
		Key:         "payment_display_issue",
		Name:        "Valid Payment Not Displayed",
		Description: "Payment was made but receipt was not properly displayed",
		KeyQuestions: []string{
			"Did you pay for parking before the citation was issued?",
			"Do you have the parking receipt?",
			"Why was the receipt not displayed?",
			"What time was payment made vs. citation issued?",
		},
		StrengthIndicators: []string{
			"Receipt timestamp before citation time",
			"Payment for correct zone/meter",
			"Receipt fell inside vehicle",
			"Wind blew receipt away",
		},
		RequiredEvidence: []string{
			"Original parking receipt",
			"Credit card or app payment confirmation",
			"Photos of receipt with timestamp",
			"Transaction records from parking app",
		},
	},
	"zone_confusion": {
		Key:         "zone_confusion",
		Name:        "Unclear Zone or Time Restrictions",
		Description: "Zone boundaries or time restrictions were unclear or ambiguous",
		KeyQuestions: []string{
			"Were zone boundaries clearly marked?",
			"Were time restrictions clearly posted?",
			"Were there multiple overlapping zones?",
			"Was the zone map accurate?",
		},
		StrengthIndicators: []string{
			"No clear zone boundary markings",
			"Conflicting zone signs",
			"Time restriction periods unclear",
			"Street cleaning schedule ambiguous",
		},
		RequiredEvidence: []string{
			"Photos showing zone markings (or lack thereof)",
			"Photos of relevant signage",
			"Screenshot of official parking map if applicable",
			"Photos showing perspective of parking location",
		},
	},
	"first_time_leniency": {
		Key:         "first_time_leniency",
		Name:        "First-Time Violation / Good Record",
		Description: "Request for leniency based on clean parking record",
		KeyQuestions: []string{
			"Is this your first parking violation in this jurisdiction?",
			"How long have you been parking in this area?",
			"Do you have a generally good compliance record?",
			"Was this an honest mistake?",
		},
		StrengthIndicators: []string{
			"No prior parking citations",
			"Long-time resident or worker in area",
			"Regular parker with good history",
			"Simple misunderstanding of rules",
		},
		RequiredEvidence: []string{
			"Driving record or DMV printout",
			"Statement of good parking history",
			"Proof of residency or employment in area",
			"Character reference if applicable",
		},
	},
	"disability_accommodation": {
		Key:         "disability_accommodation",
		Name:        "Disability-Related Accommodation",
		Description: "Citation related to disability parking or accommodation needs",
		KeyQuestions: []string{
			"Do you have a valid disability placard or license plate?",
			"Was the placard properly displayed?",
			"Was the accessible parking space properly marked?",
			"Were you denied reasonable accommodation?",
		},
		StrengthIndicators: []string{
			"Valid disability placard not recognized",
			"Accessible space markings faded or unclear",
			"No accessible parking available",
			"Time limit insufficient for disability needs",
		},
		RequiredEvidence: []string{
			"Copy of disability placard documentation",
			"Photos showing placard displayed",
			"Photos of parking space markings",
			"Medical documentation if relevant",
		},
	},
	"time_discrepancy": {
		Key:         "time_discrepancy",
		Name:        "Time Discrepancy or Error",
		Description: "Citation time is incorrect or conflicts with actual circumstances",
		KeyQuestions: []string{
			"What time did you park?",
			"What time did you leave?",
			"Do you have proof of your timeline?",
			"What time does the citation show?",
		},
		StrengthIndicators: []string{
			"Citation time impossible or implausible",
			"Proof of being elsewhere at citation time",
			"Multiple citations same time different locations",
			"Meter time conflicts with citation time",
		},
		RequiredEvidence: []string{
			"Timestamped photos or videos",
			"Receipt or parking payment with timestamp",
			"GPS or phone location data",
			"Witness statements",
			"Business receipts showing location at citation time",
		},
	},
}

// Angle returns the appeal angle for a key, or nil if unknown
func Angle(key string) *AppealAngle {
	return angles[key]
}

// Angles returns all appeal angles in catalog order
func Angles() []*AppealAngle {
	all := make([]*AppealAngle, 0, len(angleOrder))
	for _, key := range angleOrder {
		all = append(all, angles[key])
	}
	return all
}

// AngleKeys returns the catalog keys in order
func AngleKeys() []string {
	keys := make([]string, len(angleOrder))
	copy(keys, angleOrder)
	return keys
}
