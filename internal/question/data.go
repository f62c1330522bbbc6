package question

// Category and difficulty values accepted by the generator.
// "All" resolves to a uniform random concrete value at call time.
const (
	CategoryAll            = "All"
	CategoryAlgorithms     = "Algorithms"
	CategoryDataStructures = "Data Structures"
	CategorySystemDesign   = "System Design"
	CategoryBehavioral     = "Behavioral"
	CategoryDatabases      = "Databases"
	CategoryConcurrency    = "Concurrency"

	DifficultyAll    = "All"
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Categories lists the concrete categories in a stable order.
var Categories = []string{
	CategoryAlgorithms,
	CategoryDataStructures,
	CategorySystemDesign,
	CategoryBehavioral,
	CategoryDatabases,
	CategoryConcurrency,
}

// Difficulties lists the concrete difficulties in a stable order.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// topicsByCategory holds the topic pools used for primary/related topic
// selection and for padding expectedTopics. Unknown categories fall back to
// the Algorithms pool.
var topicsByCategory = map[string][]string{
	CategoryAlgorithms: {
		"binary search", "dynamic programming", "greedy algorithms", "sorting",
		"graph traversal", "two pointers", "sliding window", "backtracking",
		"recursion", "divide and conquer",
	},
	CategoryDataStructures: {
		"hash tables", "linked lists", "binary trees", "heaps", "tries",
		"stacks", "queues", "balanced search trees", "disjoint sets", "graphs",
	},
	CategorySystemDesign: {
		"load balancing", "caching", "database sharding", "message queues",
		"rate limiting", "consistent hashing", "replication", "CDNs",
		"service discovery", "event-driven architecture",
	},
	CategoryBehavioral: {
		"conflict resolution", "ownership", "mentoring", "failure handling",
		"prioritization", "cross-team collaboration", "receiving feedback",
		"tight deadlines", "disagreeing with a decision", "leading a project",
	},
	CategoryDatabases: {
		"indexing", "transactions", "normalization", "query optimization",
		"isolation levels", "denormalization", "connection pooling",
		"migrations", "partitioning", "ACID guarantees",
	},
	CategoryConcurrency: {
		"mutexes", "deadlocks", "race conditions", "worker pools",
		"channels", "atomic operations", "condition variables",
		"thread safety", "lock-free structures", "producer-consumer patterns",
	},
}

// templatesByDifficulty holds the sentence templates filled in per call.
// Placeholders: {topic}, {related_topic}, {scenario}, {complex_scenario},
// {complex_problem}, {goal}.
var templatesByDifficulty = map[string][]string{
	DifficultyEasy: {
		"Explain {topic} in your own words and describe {scenario} where you would use it.",
		"What is {topic}? How does it differ from {related_topic}?",
		"Walk me through the basics of {topic} and when you would reach for it over {related_topic}.",
	},
	DifficultyMedium: {
		"You are given {scenario}. How would you apply {topic} to solve it, and where does {related_topic} come into play?",
		"Compare {topic} and {related_topic} for {scenario}. Which trade-offs matter most?",
		"Describe how you would use {topic} to achieve {goal}, and what could go wrong.",
	},
	DifficultyHard: {
		"Consider {complex_scenario}. Design a solution built on {topic}, address {complex_problem}, and explain how {related_topic} affects your approach.",
		"You must achieve {goal} under {complex_scenario}. Using {topic}, how do you handle {complex_problem}?",
		"A system relying on {topic} is failing with {complex_problem} in {complex_scenario}. Diagnose the issue and propose a fix involving {related_topic}.",
	},
}

// wordLists holds the category-specific substitution pools.
type wordLists struct {
	Scenarios        []string
	ComplexScenarios []string
	ComplexProblems  []string
	Goals            []string
}

// wordListsByCategory drives placeholder substitution. Unknown categories
// fall back to the Algorithms lists.
var wordListsByCategory = map[string]wordLists{
	CategoryAlgorithms: {
		Scenarios: []string{
			"a sorted array of a million integers",
			"a stream of incoming price updates",
			"a list of overlapping intervals",
		},
		ComplexScenarios: []string{
			"strict memory limits on an embedded device",
			"inputs too large to fit in RAM",
			"a latency budget of under one millisecond",
		},
		ComplexProblems: []string{
			"worst-case quadratic blowup",
			"pathological input distributions",
			"numeric overflow on edge cases",
		},
		Goals: []string{
			"linear time complexity",
			"constant additional memory",
			"deterministic worst-case behavior",
		},
	},
	CategoryDataStructures: {
		Scenarios: []string{
			"an autocomplete feature over a large dictionary",
			"an LRU cache for a web service",
			"a leaderboard with frequent rank queries",
		},
		ComplexScenarios: []string{
			"billions of keys spread across machines",
			"a workload that is 99% reads with bursty writes",
			"strict upper bounds on tail latency",
		},
		ComplexProblems: []string{
			"hash collisions degrading to linear scans",
			"unbalanced trees after sorted inserts",
			"memory fragmentation from many small nodes",
		},
		Goals: []string{
			"amortized constant-time lookups",
			"ordered iteration without extra passes",
			"predictable memory usage",
		},
	},
	CategorySystemDesign: {
		Scenarios: []string{
			"a URL shortener serving global traffic",
			"a notification fan-out to millions of devices",
			"a checkout flow during a flash sale",
		},
		ComplexScenarios: []string{
			"a multi-region deployment with strict consistency needs",
			"tenfold traffic growth over six months",
			"a hard dependency on a flaky third-party API",
		},
		ComplexProblems: []string{
			"a thundering herd after cache expiry",
			"hot partitions in the data layer",
			"split-brain during network partitions",
		},
		Goals: []string{
			"five nines of availability",
			"sub-second p99 latency",
			"zero-downtime deployments",
		},
	},
	CategoryBehavioral: {
		Scenarios: []string{
			"a teammate repeatedly missing code review deadlines",
			"a production incident during a launch week",
			"a project whose requirements changed mid-sprint",
		},
		ComplexScenarios: []string{
			"two senior engineers deadlocked on architecture",
			"a stakeholder demanding an unrealistic date",
			"inheriting a critical system with no documentation",
		},
		ComplexProblems: []string{
			"eroding trust within the team",
			"scope creep threatening the release",
			"burnout spreading across the on-call rotation",
		},
		Goals: []string{
			"alignment without escalation",
			"a sustainable on-call culture",
			"shipping on time without cutting corners",
		},
	},
	CategoryDatabases: {
		Scenarios: []string{
			"a reporting query scanning ten million rows",
			"a multi-tenant SaaS schema",
			"an orders table growing by a million rows a day",
		},
		ComplexScenarios: []string{
			"a migration that cannot afford downtime",
			"cross-shard transactions on a sharded cluster",
			"replicas lagging minutes behind the primary",
		},
		ComplexProblems: []string{
			"deadlocks between long-running transactions",
			"index bloat slowing every write",
			"phantom reads corrupting report totals",
		},
		Goals: []string{
			"consistent reads at scale",
			"single-digit-millisecond point lookups",
			"safe, reversible schema changes",
		},
	},
	CategoryConcurrency: {
		Scenarios: []string{
			"a job queue consumed by many workers",
			"a shared in-memory counter updated by every request",
			"a pipeline of stages with different throughputs",
		},
		ComplexScenarios: []string{
			"thousands of goroutines contending on one resource",
			"graceful shutdown with in-flight work",
			"backpressure propagating through a streaming pipeline",
		},
		ComplexProblems: []string{
			"a deadlock that only appears under load",
			"a data race detected in production",
			"goroutine leaks exhausting memory",
		},
		Goals: []string{
			"linear scalability with core count",
			"bounded memory under bursty load",
			"clean cancellation on timeout",
		},
	},
}

// extraTopicsByDifficulty is how many padding topics are appended to
// expectedTopics beyond the primary (and possibly related) topic.
var extraTopicsByDifficulty = map[string]int{
	DifficultyEasy:   2,
	DifficultyMedium: 3,
	DifficultyHard:   4,
}

// improvedExamplesByCategory backs ImprovedExample. Unknown categories fall
// back to the Algorithms pool.
var improvedExamplesByCategory = map[string][]string{
	CategoryAlgorithms: {
		"A strong answer names the brute-force approach first, states its complexity, then derives the optimized solution step by step: \"Naively this is O(n^2); sorting first lets us use two pointers and drop to O(n log n).\"",
		"A strong answer walks through a small concrete input before generalizing: \"With [3,1,4] the window expands to index 2, then shrinks - that shrink step is what keeps the whole pass linear.\"",
	},
	CategoryDataStructures: {
		"A strong answer justifies the structure by the operations the problem demands: \"We need ordered iteration and O(log n) inserts, so a balanced BST beats a hash map here despite the slower lookups.\"",
		"A strong answer mentions the failure mode: \"A trie gives prefix lookups in O(k), but I'd size-check it first - with long random keys the memory overhead dominates.\"",
	},
	CategorySystemDesign: {
		"A strong answer starts with requirements and numbers: \"At 10k writes/sec and reads 100x that, we cache aggressively and accept eventual consistency on the read path, keeping writes strongly consistent.\"",
		"A strong answer names the bottleneck before the fix: \"The hot partition is the problem, not the database - consistent hashing with virtual nodes spreads the celebrity keys.\"",
	},
	CategoryBehavioral: {
		"A strong answer follows situation, action, result with a real metric: \"Our review queue averaged four days; I proposed rotating reviewers and a 24-hour SLA, and within a month median review time dropped to one day.\"",
		"A strong answer owns the failure explicitly: \"I shipped the migration without a rollback plan. We recovered in two hours, and I wrote the runbook we still use - every migration since has had a tested rollback.\"",
	},
	CategoryDatabases: {
		"A strong answer reads the query plan out loud: \"The sequential scan on orders is the giveaway - a composite index on (customer_id, created_at) turns this into an index-only scan.\"",
		"A strong answer states the isolation trade-off: \"Read committed is enough for the dashboard, but the billing job needs repeatable read, or two runs can double-charge on the same rows.\"",
	},
	CategoryConcurrency: {
		"A strong answer makes the invariant explicit: \"Only the owning goroutine writes the map; everyone else sends requests over a channel, so there is no lock and no race by construction.\"",
		"A strong answer bounds the concurrency: \"An unbounded 'go' per request is the leak - a worker pool of GOMAXPROCS*4 with a buffered queue gives backpressure instead of OOM.\"",
	},
}
