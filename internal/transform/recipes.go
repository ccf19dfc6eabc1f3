package transform

// Defaults returns the built-in Redbook recipe set. Search terms are
// matched against ACS variable labels, which are the only stable handle
// across dataset revisions; the opaque codes can shift between releases.
func Defaults() []Recipe {
	return []Recipe{
		{
			ID:         "RB002",
			TableID:    "S0101",
			Name:       "Age Group by % of Population",
			SheetName:  "Age Group by % of Population",
			Geography:  "state:*",
			SourceNote: "Source: American Community Survey, U.S. Census Bureau",
			Fields: []FieldSpec{
				// The total-population percent columns share their label
				// text with the male/female breakdowns; the forbidden
				// terms pick the total cross-tabulation.
				{Name: "%<18", Percent: true, Query: &TermQuery{
					Required:  []string{"percent", "under 18"},
					Forbidden: []string{"male", "female"},
				}},
				{Name: "%18-24", Percent: true, Query: &TermQuery{
					Required:  []string{"percent", "18 to 24"},
					Forbidden: []string{"male", "female"},
				}},
				// S0101 publishes five-year brackets; the wider Redbook
				// brackets are sums of the contiguous contributors.
				{Name: "%25-44", Percent: true, Sum: []TermQuery{
					{Required: []string{"percent", "25 to 29"}, Forbidden: []string{"male", "female"}},
					{Required: []string{"percent", "30 to 34"}, Forbidden: []string{"male", "female"}},
					{Required: []string{"percent", "35 to 39"}, Forbidden: []string{"male", "female"}},
					{Required: []string{"percent", "40 to 44"}, Forbidden: []string{"male", "female"}},
				}},
				{Name: "%45-64", Percent: true, Sum: []TermQuery{
					{Required: []string{"percent", "45 to 49"}, Forbidden: []string{"male", "female"}},
					{Required: []string{"percent", "50 to 54"}, Forbidden: []string{"male", "female"}},
					{Required: []string{"percent", "55 to 59"}, Forbidden: []string{"male", "female"}},
					{Required: []string{"percent", "60 to 64"}, Forbidden: []string{"male", "female"}},
				}},
				{Name: "%>64", Percent: true, Query: &TermQuery{
					Required:  []string{"percent", "65 years and over"},
					Forbidden: []string{"male", "female"},
				}},
			},
			Ranks: []RankSpec{
				{Column: "Rank", Field: "%<18"},
			},
			Columns: []ColumnSpec{
				{Header: "State", Kind: "geography"},
				{Header: "Rank", Kind: "rank"},
				{Header: "%<18", Kind: "percent"},
				{Header: "%18-24", Kind: "percent"},
				{Header: "%25-44", Kind: "percent"},
				{Header: "%45-64", Kind: "percent"},
				{Header: "%>64", Kind: "percent"},
			},
		},
		{
			ID:         "RB032",
			TableID:    "S1501",
			Name:       "Educational Attainment of Pop 25+",
			SheetName:  "Educ Attnment of Pop 25 & older",
			Geography:  "state:*",
			SourceNote: "Source: American Community Survey",
			Fields: []FieldSpec{
				{Name: "Completed H.S. or Higher", Percent: true, Query: &TermQuery{
					Required: []string{"percent", "25", "high school graduate or higher"},
				}},
				{Name: "Bachelors or Higher", Percent: true, Query: &TermQuery{
					Required: []string{"percent", "25", "bachelor's degree or higher"},
				}},
				{Name: "Advanced Degree", Percent: true, Query: &TermQuery{
					Required: []string{"percent", "25", "graduate or professional degree"},
				}},
			},
			Ranks: []RankSpec{
				{Column: "Rank", Field: "Completed H.S. or Higher"},
				{Column: "Bachelors Rank", Field: "Bachelors or Higher"},
				{Column: "Advanced Rank", Field: "Advanced Degree"},
			},
			Columns: []ColumnSpec{
				{Header: "Rank", Kind: "rank"},
				{Header: "State", Kind: "geography"},
				{Header: "Completed H.S. or Higher", Kind: "percent"},
				{Header: "Bachelors or Higher", Kind: "percent"},
				{Header: "Bachelors Rank", Kind: "rank"},
				{Header: "Advanced Degree", Kind: "percent"},
				{Header: "Advanced Rank", Kind: "rank"},
			},
		},
		{
			ID:         "RB039",
			TableID:    "B08303",
			Name:       "Metropolitan Commuting",
			SheetName:  "Metropolitan Commuting",
			Geography:  "metropolitan statistical area/micropolitan statistical area:*",
			SourceNote: "Source: U.S. Census Bureau",
			Fields: []FieldSpec{
				{Name: "Average Commute Time", Query: &TermQuery{
					Required: []string{"mean travel time"},
				}},
			},
			Ranks: []RankSpec{
				{Column: "Rank", Field: "Average Commute Time"},
			},
			Columns: []ColumnSpec{
				{Header: "Rank", Kind: "rank"},
				{Header: "Metro Area", Kind: "geography"},
				{Header: "Average Commute Time", Kind: "number"},
			},
		},
		{
			ID:         "RB040",
			TableID:    "S0801",
			Name:       "% Workers Who Worked From Home",
			SheetName:  "% Workers who work from home",
			Geography:  "metropolitan statistical area/micropolitan statistical area:*",
			SourceNote: "Source: U.S. Census Bureau",
			Fields: []FieldSpec{
				// Field is named after the effective data year so the
				// sheet reads as a year column.
				{Name: "{year}", Percent: true, Query: &TermQuery{
					Required:  []string{"percent", "worked from home"},
					Forbidden: []string{"male", "female"},
				}},
			},
			Ranks: []RankSpec{
				{Column: "Rank", Field: "{year}"},
			},
			Columns: []ColumnSpec{
				{Header: "Rank", Kind: "rank"},
				{Header: "Metro Area", Kind: "geography"},
				{Header: "{year}", Kind: "percent"},
			},
		},
		{
			ID:         "RB044",
			TableID:    "S2702",
			Name:       "% Without Health Insurance",
			SheetName:  "% WO Health Insurance by State",
			Geography:  "state:*",
			SourceNote: "Source: American Community Survey",
			Fields: []FieldSpec{
				{Name: "Percent Uninsured", Percent: true, Query: &TermQuery{
					Required:  []string{"uninsured", "percent", "total"},
					Forbidden: []string{"male", "female"},
				}},
				{Name: "Age <19", Percent: true, Query: &TermQuery{
					Required:  []string{"uninsured", "percent", "under 19"},
					Forbidden: []string{"male", "female"},
				}},
				{Name: "Age 19-64", Percent: true, Query: &TermQuery{
					Required:  []string{"uninsured", "percent", "19 to 64"},
					Forbidden: []string{"male", "female"},
				}},
				{Name: "Age 65+", Percent: true, Query: &TermQuery{
					Required:  []string{"uninsured", "percent", "65 years"},
					Forbidden: []string{"male", "female"},
				}},
			},
			// Lower uninsured rates rank first; missing data sinks to the
			// bottom rather than claiming a top spot.
			Ranks: []RankSpec{
				{Column: "Rank", Field: "Percent Uninsured", Ascending: true},
				{Column: "Age <19 Rank", Field: "Age <19", Ascending: true},
				{Column: "Age 19-64 Rank", Field: "Age 19-64", Ascending: true},
				{Column: "Age 65+ Rank", Field: "Age 65+", Ascending: true},
			},
			Columns: []ColumnSpec{
				{Header: "Rank", Kind: "rank"},
				{Header: "State", Kind: "geography"},
				{Header: "Percent Uninsured", Kind: "percent"},
				{Header: "Age <19", Kind: "percent"},
				{Header: "Age <19 Rank", Kind: "rank"},
				{Header: "Age 19-64", Kind: "percent"},
				{Header: "Age 19-64 Rank", Kind: "rank"},
				{Header: "Age 65+", Kind: "percent"},
				{Header: "Age 65+ Rank", Kind: "rank"},
			},
		},
	}
}
