package config

import "time"

// Default returns the built-in source set: several hundred public ATS board
// slugs, the Workday company roster, the GitHub feeds, and the keyword
// matrices for the search-driven sources.
func Default() *Config {
	return &Config{
		Boards: BoardConfig{
			Greenhouse:      greenhouseBoards(),
			Lever:           leverBoards(),
			Ashby:           ashbyBoards(),
			Workable:        workableBoards(),
			SmartRecruiters: smartRecruitersBoards(),
			BambooHR:        bambooHRBoards(),
		},
		Workday: workdayCompanies(),
		Feeds: FeedConfig{
			JSON:     jsonFeeds(),
			Markdown: markdownFeeds(),
		},
		Queries: QueryConfig{
			WorkdayKeywords: workdayKeywords(),
			LinkedInGuest:   linkedInGuestQueries(),
			LinkedInBrowser: linkedInBrowserQueries(),
			Simplify:        simplifyQueries(),
			Jobright:        jobrightSearches(),
			Adzuna:          adzunaRoles(),
			JSearch:         jsearchQueries(),
		},
		RateLimit: RateLimitConfig{
			MinDelay:        time.Second,
			SourceOverrides: map[string]time.Duration{},
		},
		Notification: NotificationConfig{Type: "log"},
		Discovery: DiscoveryConfig{
			HoursBack:      168,
			WorkdayLimit:   15,
			Interval:       24 * time.Hour,
			APIConcurrency: 50,
		},
	}
}

func greenhouseBoards() []string {
	return []string{
		// Big Tech / FAANG-adjacent
		"google", "meta", "apple", "stripe", "openai", "anthropic",
		"figma", "notion", "airbnb", "coinbase", "databricks", "snowflake", "linear",
		// AI / ML
		"scaleai", "weightsandbiases", "huggingface", "cohere", "stabilityai",
		"runway", "characterai", "midjourney", "jasper", "adept", "inflection",
		"mosaic", "together", "modal", "replicate", "anyscale",
		// Fintech
		"brex", "robinhood", "chime", "plaid", "rippling", "ramp", "affirm",
		"klarna", "marqeta", "mercury", "deel", "remote", "gusto",
		// SaaS / Cloud
		"datadoghq", "elastic", "confluent", "hashicorp", "instacart", "fivetran",
		"gong", "roblox", "asana", "box", "dropbox", "gitlab", "okta", "zendesk",
		"zoom", "slack", "twilio", "cloudflare", "fastly", "netskope",
		// Crypto / Web3
		"kraken", "gemini", "alchemy", "consensys", "chainlink", "polygon",
		"optimism", "base",
		// Infra / DevTools
		"sentry", "grafana", "airbyte", "census", "hightouch", "segment",
		"amplitude", "mixpanel", "heap", "fullstory", "logrocket", "newrelic",
		"dynatrace", "splunk", "mode", "metabase", "dbt", "vanta", "benchling",
		// Marketplace / Consumer
		"pinterest", "doordash", "discord", "reddit", "twitch", "spotify",
		"vimeo", "patreon",
		// Deep Tech / Robotics
		"cruise", "anduril", "nuro", "waymo", "aurora", "skydio", "rivian", "lucid",
		// Other
		"canva", "framer", "modern-health", "lattice", "ironclad", "front",
		"checkr", "flexport", "shipbob", "outreach", "loom", "pilot",
		"bench", "carta", "circle", "clearbit", "cultureamp", "envoy",
		"hotjar", "maven", "webflow", "whatnot", "workato", "yotpo",
		"paloaltonetworks", "okta", "auth0", "zscaler",
		"hubspot", "mailchimp", "intercom", "drift", "salesloft",
		"palantir", "atlassian", "sqsp",
	}
}

func leverBoards() []string {
	return []string{
		// Big / well-known
		"netflix", "lyft", "shopify", "duolingo", "miro", "zapier",
		"amplitude", "looker", "quora", "yelp", "zillow",
		// Ed-tech
		"coursera", "udemy", "masterclass", "coursehero",
		// Travel
		"hopper", "kayak",
		// Fintech
		"revolut", "monzo", "nubank", "klarna", "airwallex",
		"remitly", "wise", "transferwise", "marqeta", "checkout",
		"brex", "ramp", "mercury", "plaid",
		// Marketplace
		"doordash", "gopuff", "shipt", "deliveroo", "swiggy",
		"ticketmaster", "seatgeek", "gametime",
		// Crypto
		"kraken", "gemini", "opensea", "dapperlabs",
		// SaaS
		"affinity", "bench", "carta", "circle", "clearbit",
		"cultureamp", "envoy", "flexport", "loom", "maven",
		"outreach", "postscript", "qualtrics", "segment",
		"usertesting", "wealthfront", "webflow", "whatnot",
		"workato", "yotpo", "zenefits",
		// Misc
		"snap", "teachable", "thumbtack", "grubhub", "postmates",
		"kickstarter", "patreon", "eventbrite", "meetup",
		"gofundme", "indiegogo", "vividseats",
	}
}

func ashbyBoards() []string {
	return []string{
		"notion", "linear", "loom", "retool", "dbt-labs", "figma",
		"scale-ai", "cohere", "adept", "inflection", "together",
		"modal", "replicate", "anyscale", "weights-biases",
		"anthropic", "perplexity", "mistral",
		"brex", "ramp", "mercury", "airbase", "puzzle",
		"lattice", "rippling", "deel", "remote", "gusto",
		"vercel", "supabase", "planetscale", "railway",
		"posthog", "metabase", "grafana", "airbyte",
		"clerk", "neon", "turso", "convex", "upstash",
		"arc", "warp", "zed", "cursor",
		"codeium", "tabnine", "sourcegraph", "coder",
		"hex", "mode", "starburst", "firebolt",
		"baseten", "beam", "lepton",
		"fly", "render",
		"vapi", "bland", "retell", "11x",
		"glean", "guru", "tettra",
		"workos", "stytch", "ory",
		"mintlify", "gitbook", "readme",
		"trunk", "aviator", "mergify", "linearb",
		"incident", "rootly", "firehydrant", "blameless",
		"census", "hightouch", "polytomic",
		"growthbook", "statsig", "split", "launchdarkly",
		"tinybird", "clickhouse", "motherduck", "rill",
		"inngest", "trigger", "windmill", "n8n",
		"montecarlodata", "soda",
		"secureframe", "drata",
	}
}

func workableBoards() []string {
	return []string{
		"spotify-2", "intercom", "typeform", "taxjar", "pipedrive",
		"hotjar", "calendly", "airtable", "productboard", "pendo",
		"mixpanel", "heap-2", "amplitude-2", "appsflyer", "contentsquare",
		"adjust", "branch", "kochava", "singular",
		"algolia", "elastic-2", "meilisearch", "typesense",
		"hasura", "fauna", "tigris", "deno",
		"estuary", "mage", "prefect", "dagster", "astronomer",
		"dbt-labs-2", "atlan",
		"omnivore", "bending-spoons", "picsart", "canva-2",
		"onfido", "veriff", "sumsub", "persona",
	}
}

func smartRecruitersBoards() []string {
	return []string{
		"mcdonalds", "visa", "starbucks", "linkedin-corp", "adobe",
		"bosch", "siemens", "deloitte", "kpmg", "pwc",
		"thoughtworks", "n26", "delivery-hero", "checkout-com",
		"adyen", "mollie",
	}
}

func bambooHRBoards() []string {
	return []string{
		"palantir", "qualtrics", "divvy", "olo", "nearmap",
		"lucidchart", "familysearch", "healthequity",
		"domo", "chatmeter", "businessq",
	}
}

// workdayCompanies carries the full roster in priority order. Entries on
// other platforms (Lever, Greenhouse, custom career sites) are skipped by
// the adapter's host check but kept here so coverage is visible in one place.
func workdayCompanies() []WorkdayCompany {
	return []WorkdayCompany{
		{Name: "NVIDIA", URL: "https://nvidia.wd5.myworkdayjobs.com/NVIDIAExternalCareerSite"},
		{Name: "Microsoft", URL: "https://microsoft.wd5.myworkdayjobs.com/External"},
		{Name: "Apple", URL: "https://apple.wd1.myworkdayjobs.com/en-US/apple_external_application"},
		{Name: "Walmart", URL: "https://walmart.wd5.myworkdayjobs.com/WalmartExternal"},
		{Name: "IBM", URL: "https://ibm.wd12.myworkdayjobs.com/en-US/External"},
		{Name: "Salesforce", URL: "https://salesforce.wd1.myworkdayjobs.com/External_Career_Site"},
		{Name: "Cisco", URL: "https://cisco.wd5.myworkdayjobs.com/External"},
		{Name: "Intel", URL: "https://intel.wd1.myworkdayjobs.com/External"},
		{Name: "AMD", URL: "https://amd.wd1.myworkdayjobs.com/External"},
		{Name: "Qualcomm", URL: "https://qualcomm.wd5.myworkdayjobs.com/External"},
		{Name: "TI", URL: "https://ti.wd5.myworkdayjobs.com/TIU_Candidates_External"},
		{Name: "Boeing", URL: "https://boeing.wd1.myworkdayjobs.com/EXTERNAL_CAREERS"},
		{Name: "Lockheed", URL: "https://lmco.wd5.myworkdayjobs.com/External"},
		{Name: "Raytheon", URL: "https://rtx.wd1.myworkdayjobs.com/RTX"},
		{Name: "Northrop", URL: "https://ngc.wd1.myworkdayjobs.com/NGC_External_Career_Site"},
		{Name: "HP", URL: "https://hp.wd5.myworkdayjobs.com/ExternalCareerSite"},
		{Name: "Dell", URL: "https://dell.wd1.myworkdayjobs.com/External"},
		{Name: "VMware", URL: "https://vmware.wd1.myworkdayjobs.com/VMware"},
		{Name: "Workday", URL: "https://workday.wd5.myworkdayjobs.com/Workday"},
		{Name: "SAP", URL: "https://sap.wd3.myworkdayjobs.com/SAP"},
		{Name: "Intuit", URL: "https://intuit.wd1.myworkdayjobs.com/jobs"},
		{Name: "PayPal", URL: "https://paypal.wd1.myworkdayjobs.com/jobs"},
		{Name: "eBay", URL: "https://ebay.wd5.myworkdayjobs.com/apply"},
		{Name: "Twitter/X", URL: "https://twitter.wd5.myworkdayjobs.com/Twitter"},
		{Name: "Snap", URL: "https://wd1.myworkdayjobs.com/en-US/snap"},
		// Off-platform entries, skipped by the host check.
		{Name: "Amazon", URL: "https://amazon.jobs/en/search.json"},
		{Name: "JPMorgan", URL: "https://jpmc.fa.oraclecloud.com/hcmUI/CandidateExperience/en/sites/CX_1001/jobs"},
		{Name: "Oracle", URL: "https://eeho.fa.us2.oraclecloud.com/hcmUI/CandidateExperience/en/sites/jobsearch/jobs"},
		{Name: "GE", URL: "https://jobs.gecareers.com/global/en/search-results"},
		{Name: "ServiceNow", URL: "https://jobs.smartrecruiters.com/ServiceNow"},
		{Name: "Netflix", URL: "https://jobs.lever.co/netflix"},
		{Name: "Uber", URL: "https://www.uber.com/api/loadSearchJobsResults"},
		{Name: "Lyft", URL: "https://jobs.lever.co/lyft"},
		{Name: "Pinterest", URL: "https://www.pinterestcareers.com/job-search-results/"},
		{Name: "Block", URL: "https://block.xyz/careers"},
		{Name: "Shopify", URL: "https://jobs.lever.co/shopify"},
		{Name: "Spotify", URL: "https://jobs.lever.co/spotify"},
		{Name: "Airbnb", URL: "https://careers.airbnb.com/positions/"},
		{Name: "DoorDash", URL: "https://boards.greenhouse.io/doordash"},
		{Name: "Instacart", URL: "https://boards.greenhouse.io/instacart"},
		{Name: "Robinhood", URL: "https://boards.greenhouse.io/robinhood"},
	}
}

func jsonFeeds() []FeedSource {
	return []FeedSource{
		{Label: "simplify-ng", URL: "https://raw.githubusercontent.com/SimplifyJobs/New-Grad-Positions/dev/src/data/positions.json"},
		{Label: "speedyapply-2026", URL: "https://raw.githubusercontent.com/speedyapply/2026-SWE-College-Jobs/main/src/data/positions.json"},
		{Label: "vanshb-2026", URL: "https://raw.githubusercontent.com/vanshb03/New-Grad-2026/main/src/data/positions.json"},
		{Label: "coderquad", URL: "https://raw.githubusercontent.com/coderQuad/New-Grad-Hires/main/src/data/positions.json"},
		{Label: "reavnail", URL: "https://raw.githubusercontent.com/ReaVNaiL/New-Grad-2024/main/src/data/positions.json"},
		{Label: "ouckah", URL: "https://raw.githubusercontent.com/Ouckah/Summer2025-Internships/dev/src/data/positions.json"},
		{Label: "cvrve-2025", URL: "https://raw.githubusercontent.com/cvrve/New-Grad-2025/dev/src/data/positions.json"},
		{Label: "akazaakane-pm", URL: "https://raw.githubusercontent.com/AkazaAkane/product-manager-jobs-fall-2024/main/src/data/positions.json"},
	}
}

func markdownFeeds() []FeedSource {
	return []FeedSource{
		{Label: "speedyapply-2026", URL: "https://raw.githubusercontent.com/speedyapply/2026-SWE-College-Jobs/main/NEW_GRAD_USA.md"},
		{Label: "vanshb-2026", URL: "https://raw.githubusercontent.com/vanshb03/New-Grad-2026/main/README.md"},
		{Label: "simplify-ng", URL: "https://raw.githubusercontent.com/SimplifyJobs/New-Grad-Positions/dev/README.md"},
		{Label: "reavnail", URL: "https://raw.githubusercontent.com/ReaVNaiL/New-Grad-2024/main/README.md"},
		{Label: "pittcsc", URL: "https://raw.githubusercontent.com/pittcsc/Summer2024-Internships/dev/README.md"},
		{Label: "ouckah", URL: "https://raw.githubusercontent.com/Ouckah/Summer2025-Internships/dev/README.md"},
	}
}

func workdayKeywords() []string {
	return []string{
		"Software Engineer",
		"New Grad",
		"Entry Level Engineer",
		"Data Engineer",
		"Analytics Engineer",
		"Data Scientist",
		"Data Analyst",
		"Business Analyst",
		"Business Intelligence Analyst",
		"Product Analyst",
		"Operations Analyst",
		"Machine Learning Engineer",
		"Cloud Engineer",
		"Platform Engineer",
	}
}

// linkedInGuestQueries feeds the guest JSON API phase. Broad queries come
// first since they yield the most unique results per page budget.
func linkedInGuestQueries() []string {
	return []string{
		"new grad software engineer",
		"entry level software engineer",
		"software engineer I",
		"SDE 1",
		"junior software engineer",
		"associate software engineer",
		"backend engineer new grad",
		"frontend engineer entry level",
		"full stack engineer entry level",
		"data engineer entry level",
		"data engineer new grad",
		"analytics engineer entry level",
		"data scientist new grad",
		"data analyst entry level",
		"data analyst new grad",
		"business analyst entry level",
		"business intelligence analyst entry level",
		"BI analyst new grad",
		"product analyst new grad",
		"operations analyst entry level",
		"AI engineer entry level",
		"machine learning engineer new grad",
		"cloud engineer new grad",
		"DevOps engineer entry level",
		"platform engineer new grad",
		"mobile engineer entry level",
		"early career engineer",
		"new graduate engineer",
	}
}

func linkedInBrowserQueries() []string {
	return []string{
		"new grad software engineer",
		"entry level software engineer",
		"software engineer I",
		"SDE 1",
		"junior software engineer",
		"associate software engineer",
		"backend engineer new grad",
		"frontend engineer entry level",
		"full stack engineer entry level",
		"data engineer entry level",
		"data engineer new grad",
		"analytics engineer entry level",
		"data scientist new grad",
		"data analyst entry level",
		"data analyst new grad",
		"business analyst entry level",
		"business intelligence analyst entry level",
		"product analyst new grad",
		"operations analyst entry level",
		"AI engineer entry level",
		"machine learning engineer new grad",
		"cloud engineer new grad",
		"early career software engineer",
	}
}

func simplifyQueries() []string {
	return []string{
		"software engineer new grad",
		"SDE 1",
		"junior software engineer",
		"associate software engineer",
		"backend engineer entry level",
		"frontend engineer entry level",
		"full stack engineer new grad",
		"data engineer entry level",
		"data engineer new grad",
		"analytics engineer entry level",
		"data scientist new grad",
		"data analyst entry level",
		"business analyst entry level",
		"business intelligence analyst entry level",
		"product analyst new grad",
		"operations analyst entry level",
		"machine learning engineer entry level",
		"AI engineer new grad",
		"cloud engineer entry level",
		"DevOps engineer entry level",
		"platform engineer new grad",
		"mobile engineer entry level",
	}
}

func jobrightSearches() []JobrightSearch {
	return []JobrightSearch{
		{Role: "Software Engineer Entry Level", Experience: "Entry Level"},
		{Role: "Software Engineer New Grad", Experience: "Entry Level"},
		{Role: "Backend Engineer Entry Level", Experience: "Entry Level"},
		{Role: "Full Stack Engineer Entry Level", Experience: "Entry Level"},
		{Role: "AI Engineer New Grad", Experience: "Entry Level"},
		{Role: "Machine Learning Engineer Entry", Experience: "Entry Level"},
		{Role: "Data Engineer Entry Level", Experience: "Entry Level"},
		{Role: "Cloud Engineer Entry Level", Experience: "Entry Level"},
		{Role: "New Grad SWE", Experience: "Entry Level"},
		{Role: "Junior Software Engineer", Experience: "Junior"},
		{Role: "Junior Backend Engineer", Experience: "Junior"},
		{Role: "SDE 1", Experience: "Entry Level"},
	}
}

func adzunaRoles() []string {
	return []string{
		"software engineer new grad",
		"backend engineer entry level",
		"data engineer junior",
		"machine learning engineer entry level",
		"cloud engineer new grad",
		"full stack developer entry level",
		"sde entry level",
	}
}

func jsearchQueries() []string {
	return []string{
		"software engineer new grad United States",
		"entry level backend engineer remote",
		"junior data engineer United States",
		"entry level ML engineer remote",
	}
}
