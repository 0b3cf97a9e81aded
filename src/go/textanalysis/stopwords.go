package textanalysis

// stopWords is the fixed English stop-word set used to weight content words
// during extractive summarization. It is carried over verbatim from the
// original application's summarizer (articles, prepositions, pronouns,
// common verbs and their inflections, conjunctions, adverbs, time words,
// quantifiers, and miscellaneous function words) so that summarization
// output does not drift across reimplementations. The exact list is part of
// the contract; stopwords_test.go pins its size.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "on": {}, "at": {}, "by": {}, "for": {},
	"with": {}, "without": {}, "through": {}, "during": {}, "before": {}, "after": {}, "above": {}, "below": {},
	"up": {}, "down": {}, "out": {}, "off": {}, "over": {}, "under": {}, "again": {}, "further": {},
	"then": {}, "once": {}, "here": {}, "there": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"all": {}, "any": {}, "both": {}, "each": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "no": {}, "nor": {}, "not": {}, "only": {}, "own": {}, "same": {},
	"so": {}, "than": {}, "too": {}, "very": {}, "can": {}, "will": {}, "just": {}, "should": {},
	"now": {}, "into": {}, "about": {}, "against": {}, "between": {}, "across": {}, "behind": {}, "beyond": {},
	"beside": {}, "beneath": {}, "around": {}, "among": {}, "along": {}, "within": {}, "throughout": {}, "i": {},
	"me": {}, "my": {}, "myself": {}, "we": {}, "our": {}, "ours": {}, "ourselves": {}, "you": {},
	"your": {}, "yours": {}, "yourself": {}, "yourselves": {}, "he": {}, "him": {}, "his": {}, "himself": {},
	"she": {}, "her": {}, "hers": {}, "herself": {}, "it": {}, "its": {}, "itself": {}, "they": {},
	"them": {}, "their": {}, "theirs": {}, "themselves": {}, "what": {}, "which": {}, "who": {}, "whom": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "am": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "having": {},
	"do": {}, "does": {}, "did": {}, "doing": {}, "would": {}, "could": {}, "may": {}, "might": {},
	"must": {}, "shall": {}, "get": {}, "got": {}, "getting": {}, "go": {}, "going": {}, "gone": {},
	"went": {}, "come": {}, "came": {}, "coming": {}, "take": {}, "took": {}, "taken": {}, "taking": {},
	"make": {}, "made": {}, "making": {}, "see": {}, "saw": {}, "seen": {}, "seeing": {}, "know": {},
	"knew": {}, "known": {}, "knowing": {}, "think": {}, "thought": {}, "thinking": {}, "say": {}, "said": {},
	"saying": {}, "tell": {}, "told": {}, "telling": {}, "ask": {}, "asked": {}, "asking": {}, "work": {},
	"worked": {}, "working": {}, "seem": {}, "seemed": {}, "seeming": {}, "feel": {}, "felt": {}, "feeling": {},
	"try": {}, "tried": {}, "trying": {}, "leave": {}, "left": {}, "leaving": {}, "call": {}, "called": {},
	"calling": {}, "put": {}, "putting": {}, "give": {}, "gave": {}, "given": {}, "giving": {}, "find": {},
	"found": {}, "finding": {}, "become": {}, "became": {}, "becoming": {}, "look": {}, "looked": {}, "looking": {},
	"want": {}, "wanted": {}, "wanting": {}, "use": {}, "used": {}, "using": {}, "keep": {}, "kept": {},
	"keeping": {}, "let": {}, "letting": {}, "begin": {}, "began": {}, "begun": {}, "beginning": {}, "help": {},
	"helped": {}, "helping": {}, "talk": {}, "talked": {}, "talking": {}, "turn": {}, "turned": {}, "turning": {},
	"start": {}, "started": {}, "starting": {}, "show": {}, "showed": {}, "shown": {}, "showing": {}, "hear": {},
	"heard": {}, "hearing": {}, "play": {}, "played": {}, "playing": {}, "run": {}, "ran": {}, "running": {},
	"move": {}, "moved": {}, "moving": {}, "live": {}, "lived": {}, "living": {}, "believe": {}, "believed": {},
	"believing": {}, "hold": {}, "held": {}, "holding": {}, "bring": {}, "brought": {}, "bringing": {}, "happen": {},
	"happened": {}, "happening": {}, "write": {}, "wrote": {}, "written": {}, "writing": {}, "provide": {}, "provided": {},
	"providing": {}, "sit": {}, "sat": {}, "sitting": {}, "stand": {}, "stood": {}, "standing": {}, "lose": {},
	"lost": {}, "losing": {}, "pay": {}, "paid": {}, "paying": {}, "meet": {}, "met": {}, "meeting": {},
	"include": {}, "included": {}, "including": {}, "continue": {}, "continued": {}, "continuing": {}, "set": {}, "setting": {},
	"learn": {}, "learned": {}, "learning": {}, "change": {}, "changed": {}, "changing": {}, "lead": {}, "led": {},
	"leading": {}, "understand": {}, "understood": {}, "understanding": {}, "watch": {}, "watched": {}, "watching": {}, "follow": {},
	"followed": {}, "following": {}, "stop": {}, "stopped": {}, "stopping": {}, "create": {}, "created": {}, "creating": {},
	"speak": {}, "spoke": {}, "spoken": {}, "speaking": {}, "read": {}, "reading": {}, "allow": {}, "allowed": {},
	"allowing": {}, "add": {}, "added": {}, "adding": {}, "spend": {}, "spent": {}, "spending": {}, "grow": {},
	"grew": {}, "grown": {}, "growing": {}, "open": {}, "opened": {}, "opening": {}, "walk": {}, "walked": {},
	"walking": {}, "win": {}, "won": {}, "winning": {}, "offer": {}, "offered": {}, "offering": {}, "remember": {},
	"remembered": {}, "remembering": {}, "love": {}, "loved": {}, "loving": {}, "consider": {}, "considered": {}, "considering": {},
	"appear": {}, "appeared": {}, "appearing": {}, "buy": {}, "bought": {}, "buying": {}, "wait": {}, "waited": {},
	"waiting": {}, "serve": {}, "served": {}, "serving": {}, "die": {}, "died": {}, "dying": {}, "send": {},
	"sent": {}, "sending": {}, "expect": {}, "expected": {}, "expecting": {}, "build": {}, "built": {}, "building": {},
	"stay": {}, "stayed": {}, "staying": {}, "fall": {}, "fell": {}, "fallen": {}, "falling": {}, "cut": {},
	"cutting": {}, "reach": {}, "reached": {}, "reaching": {}, "kill": {}, "killed": {}, "killing": {}, "remain": {},
	"remained": {}, "remaining": {}, "and": {}, "or": {}, "but": {}, "if": {}, "while": {}, "although": {},
	"though": {}, "because": {}, "since": {}, "unless": {}, "until": {}, "whether": {}, "either": {}, "neither": {},
	"also": {}, "however": {}, "therefore": {}, "thus": {}, "hence": {}, "moreover": {}, "furthermore": {}, "nevertheless": {},
	"nonetheless": {}, "always": {}, "never": {}, "often": {}, "sometimes": {}, "usually": {}, "frequently": {}, "rarely": {},
	"seldom": {}, "hardly": {}, "barely": {}, "nearly": {}, "almost": {}, "quite": {}, "rather": {}, "pretty": {},
	"fairly": {}, "really": {}, "truly": {}, "actually": {}, "certainly": {}, "definitely": {}, "probably": {}, "possibly": {},
	"maybe": {}, "perhaps": {}, "obviously": {}, "clearly": {}, "apparently": {}, "evidently": {}, "surely": {}, "indeed": {},
	"naturally": {}, "unfortunately": {}, "fortunately": {}, "hopefully": {}, "basically": {}, "generally": {}, "specifically": {}, "particularly": {},
	"especially": {}, "mainly": {}, "mostly": {}, "largely": {}, "primarily": {}, "essentially": {}, "effectively": {}, "significantly": {},
	"considerably": {}, "substantially": {}, "relatively": {}, "comparatively": {}, "extremely": {}, "incredibly": {}, "remarkably": {}, "surprisingly": {},
	"interestingly": {}, "importantly": {}, "finally": {}, "eventually": {}, "ultimately": {}, "originally": {}, "initially": {}, "previously": {},
	"recently": {}, "currently": {}, "presently": {}, "immediately": {}, "directly": {}, "instantly": {}, "suddenly": {}, "quickly": {},
	"slowly": {}, "gradually": {}, "steadily": {}, "constantly": {}, "continuously": {}, "regularly": {}, "occasionally": {}, "repeatedly": {},
	"consistently": {}, "persistently": {}, "thoroughly": {}, "completely": {}, "entirely": {}, "totally": {}, "fully": {}, "partially": {},
	"partly": {}, "slightly": {}, "somewhat": {}, "today": {}, "tomorrow": {}, "yesterday": {}, "soon": {}, "later": {},
	"early": {}, "late": {}, "already": {}, "still": {}, "yet": {}, "ago": {}, "first": {}, "last": {},
	"next": {}, "previous": {}, "many": {}, "much": {}, "little": {}, "several": {}, "enough": {}, "plenty": {},
	"lots": {}, "tons": {}, "numerous": {}, "countless": {}, "various": {}, "different": {}, "certain": {}, "particular": {},
	"specific": {}, "general": {}, "common": {}, "usual": {}, "normal": {}, "regular": {}, "standard": {}, "typical": {},
	"average": {}, "ordinary": {}, "simple": {}, "basic": {}, "main": {}, "primary": {}, "principal": {}, "major": {},
	"minor": {}, "important": {}, "significant": {}, "relevant": {}, "appropriate": {}, "suitable": {}, "proper": {}, "correct": {},
	"right": {}, "wrong": {}, "good": {}, "bad": {}, "better": {}, "worse": {}, "best": {}, "worst": {},
	"great": {}, "excellent": {}, "perfect": {}, "fine": {}, "okay": {}, "alright": {}, "nice": {}, "wonderful": {},
	"amazing": {}, "incredible": {}, "fantastic": {}, "awesome": {}, "terrible": {}, "awful": {}, "horrible": {}, "poor": {},
	"weak": {}, "strong": {}, "powerful": {}, "effective": {}, "successful": {}, "useful": {}, "helpful": {}, "valuable": {},
	"worthwhile": {}, "meaningful": {}, "interesting": {}, "exciting": {}, "boring": {}, "dull": {}, "easy": {}, "difficult": {},
	"hard": {}, "complex": {}, "complicated": {}, "clear": {}, "obvious": {}, "evident": {}, "apparent": {}, "visible": {},
	"hidden": {}, "secret": {}, "private": {}, "public": {}, "closed": {}, "available": {}, "possible": {}, "impossible": {},
	"likely": {}, "unlikely": {}, "uncertain": {}, "sure": {}, "unsure": {}, "confident": {}, "doubtful": {}, "well": {},
	"oh": {}, "yes": {}, "ok": {}, "please": {}, "thanks": {}, "thank": {}, "welcome": {}, "sorry": {},
	"excuse": {}, "pardon": {}, "hello": {}, "hi": {}, "bye": {}, "goodbye": {}, "dear": {}, "sir": {},
	"madam": {}, "mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "etc": {}, "ie": {},
	"eg": {}, "vs": {}, "via": {}, "per": {}, "re": {}, "ps": {},
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
