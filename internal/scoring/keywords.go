package scoring

// Default semantic keyword lists. Names containing a critical verb mark
// business operations worth surfacing; secondary verbs mark read paths.
// Both lists are overridable through Weights.

var defaultCriticalKeywords = []string{
	"create", "update", "delete", "remove", "save", "insert",
	"pay", "charge", "refund", "transfer",
	"process", "execute", "run", "dispatch",
	"validate", "verify", "authorize", "authenticate",
	"handle", "submit", "publish", "send",
	"register", "cancel", "approve", "reject",
}

var defaultSecondaryKeywords = []string{
	"find", "search", "list", "show", "fetch", "load",
	"query", "filter", "resolve", "lookup", "count",
}

// defaultBoilerplateNames are lifecycle and language-plumbing members
// that rarely carry business meaning.
var defaultBoilerplateNames = []string{
	"__init__", "__str__", "__repr__", "__eq__", "__hash__",
	"__construct", "__destruct", "__toString", "__get", "__set",
	"toString", "equals", "hashCode", "clone", "finalize",
	"main", "setUp", "tearDown",
}
