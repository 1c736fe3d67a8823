package seeder

func Defaults() []Seeder {
	return []Seeder{
		IndustrySkillsSeeder{Data: SampleIndustries()},
		MarketDataSeeder{Data: SampleIndustries()},
	}
}
