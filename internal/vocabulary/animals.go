package vocabulary

// animals is the closed set of labels the matcher may return. The groupings
// mirror the emoji catalog the frontend renders results with.
var animals = []string{
	// mammals
	"leopard", "lion", "tiger", "elephant", "panda", "bear", "koala",
	"monkey", "gorilla", "orangutan", "dog", "poodle", "wolf", "fox",
	"raccoon", "cat", "cow", "ox", "buffalo", "pig", "boar", "goat",
	"sheep", "ram", "deer", "horse", "zebra", "giraffe", "camel", "llama",
	"hippopotamus", "rhinoceros", "kangaroo", "bat", "mouse", "rat",
	"rabbit", "chipmunk", "hedgehog",

	// birds
	"chick", "rooster", "chicken", "turkey", "duck", "swan", "owl",
	"eagle", "dove", "flamingo", "peacock", "parrot", "penguin",

	// aquatic
	"fish", "tropical_fish", "blowfish", "shark", "dolphin", "whale",
	"seal", "octopus", "crab", "lobster", "shrimp", "squid",

	// insects and others
	"snail", "butterfly", "bug", "ant", "honeybee", "cricket", "spider",
	"scorpion", "mosquito",

	// reptiles and amphibians
	"turtle", "crocodile", "lizard", "snake", "frog",

	// mythical
	"dragon", "unicorn",

	// extinct
	"dinosaur",
}

// synonyms maps variants a model commonly produces onto a canonical label.
var synonyms = map[string]string{
	// plurals
	"lions":     "lion",
	"tigers":    "tiger",
	"cats":      "cat",
	"dogs":      "dog",
	"wolves":    "wolf",
	"foxes":     "fox",
	"bears":     "bear",
	"horses":    "horse",
	"owls":      "owl",
	"eagles":    "eagle",
	"sharks":    "shark",
	"dolphins":  "dolphin",
	"whales":    "whale",
	"penguins":  "penguin",
	"snakes":    "snake",
	"dragons":   "dragon",
	"unicorns":  "unicorn",
	"dinosaurs": "dinosaur",
	"monkeys":   "monkey",
	"rabbits":   "rabbit",
	"mice":      "mouse",

	// young and domestic variants
	"kitten":   "cat",
	"kitty":    "cat",
	"puppy":    "dog",
	"pup":      "dog",
	"bunny":    "rabbit",
	"hare":     "rabbit",
	"cub":      "bear",
	"foal":     "horse",
	"pony":     "horse",
	"lamb":     "sheep",
	"piglet":   "pig",
	"hen":      "chicken",
	"duckling": "duck",
	"calf":     "cow",
	"bull":     "ox",

	// species and common names
	"panther":       "leopard",
	"jaguar":        "leopard",
	"cheetah":       "leopard",
	"lioness":       "lion",
	"wolf pup":      "wolf",
	"grizzly":       "bear",
	"grizzly bear":  "bear",
	"polar bear":    "bear",
	"panda bear":    "panda",
	"giant panda":   "panda",
	"red panda":     "panda",
	"koala bear":    "koala",
	"chimpanzee":    "monkey",
	"chimp":         "monkey",
	"ape":           "gorilla",
	"bison":         "buffalo",
	"hippo":         "hippopotamus",
	"rhino":         "rhinoceros",
	"squirrel":      "chipmunk",
	"bee":           "honeybee",
	"honey bee":     "honeybee",
	"bumblebee":     "honeybee",
	"grasshopper":   "cricket",
	"caterpillar":   "bug",
	"beetle":        "bug",
	"ladybug":       "bug",
	"tortoise":      "turtle",
	"sea turtle":    "turtle",
	"alligator":     "crocodile",
	"gecko":         "lizard",
	"chameleon":     "lizard",
	"iguana":        "lizard",
	"toad":          "frog",
	"python":        "snake",
	"cobra":         "snake",
	"falcon":        "eagle",
	"hawk":          "eagle",
	"pigeon":        "dove",
	"peafowl":       "peacock",
	"macaw":         "parrot",
	"cockatoo":      "parrot",
	"tropical fish": "tropical_fish",
	"goldfish":      "fish",
	"pufferfish":    "blowfish",
	"puffer fish":   "blowfish",
	"orca":          "whale",
	"killer whale":  "whale",
	"sea lion":      "seal",
	"walrus":        "seal",
	"t-rex":         "dinosaur",
	"t. rex":        "dinosaur",
	"trex":          "dinosaur",
	"tyrannosaurus": "dinosaur",
	"raptor":        "dinosaur",
	"wyvern":        "dragon",
	"pegasus":       "unicorn",
}
