package lexicon

func newDefault() *Lexicon {
	return &Lexicon{
		emoji: []EmojiRule{
			{Keywords: []string{"restaurant", "restaurants", "makla", "food"}, Glyph: "🍽️"},
			{Keywords: []string{"oran", "alger", "algiers", "constantine", "setif", "annaba"}, Glyph: "📍"},
			{Keywords: []string{"météo", "weather", "jaw"}, Glyph: "🌤️"},
			{Keywords: []string{"rain"}, Glyph: "🌧️"},
			{Keywords: []string{"sun"}, Glyph: "☀️"},
			{Keywords: []string{"beach", "plage"}, Glyph: "🏖️"},
			{Keywords: []string{"sea", "bahr"}, Glyph: "🌊"},
			{Keywords: []string{"transport", "bus"}, Glyph: "🚌"},
			{Keywords: []string{"metro"}, Glyph: "🚇"},
			{Keywords: []string{"taxi"}, Glyph: "🚕"},
			{Keywords: []string{"prix", "price"}, Glyph: "💰"},
			{Keywords: []string{"shopping"}, Glyph: "🛍️"},
			{Keywords: []string{"salam", "ahla"}, Glyph: "👋"},
			{Keywords: []string{"merci", "choukran"}, Glyph: "🙏"},
			{Keywords: []string{"time", "wa9t"}, Glyph: "⏰"},
			{Keywords: []string{"today", "lyoum"}, Glyph: "📅"},
		},

		assistantNames: []string{"Chériki-1", "Chériki", "Chriki"},
		importance:     []string{"important", "mhim", "mohim", "essentiel", "urgent"},

		// Order matters: the first category with a fallback term wins when a
		// query collapses to nothing.
		categories: []Category{
			{Name: "hospital", Fallback: "hospitals", Keywords: []string{
				"hospital", "hôpital", "hopital", "sbitar", "مستشفى", "مستشفيات",
			}},
			{Name: "restaurant", Fallback: "restaurants", Keywords: []string{
				"restaurant", "resto", "مطعم", "مطاعم",
			}},
			{Name: "pharmacy", Fallback: "pharmacies", Keywords: []string{
				"pharmacy", "pharmacies", "pharmacie", "صيدلية", "صيدليات",
			}},
			{Name: "cafe", Keywords: []string{"cafe", "café", "قهوة", "كافيه"}},
			{Name: "bank", Keywords: []string{"bank", "banque", "بنك", "بنوك"}},
			{Name: "atm", Keywords: []string{"atm", "distributeur"}},
			{Name: "fuel", Keywords: []string{"gas station", "station service", "station-service", "محطة بنزين"}},
			{Name: "police", Keywords: []string{"police", "commissariat", "شرطة"}},
			{Name: "fire", Keywords: []string{"fire station", "pompiers", "إطفاء"}},
			{Name: "school", Keywords: []string{"school", "école", "ecole", "مدرسة", "مدارس"}},
			{Name: "university", Keywords: []string{"university", "universities", "université", "universite", "جامعة", "جامعات"}},
			{Name: "park", Keywords: []string{"park", "parc", "حديقة", "حدائق"}},
			{Name: "museum", Keywords: []string{"museum", "musée", "musee", "متحف", "متاحف"}},
			{Name: "cinema", Keywords: []string{"cinema", "cinéma", "سينما"}},
			{Name: "shopping", Keywords: []string{"shopping", "centre commercial", "mall", "مركز تجاري"}},
		},

		proximity: []string{
			"near me", "nearby", "around me",
			"près de moi", "pres de moi", "autour de moi", "à proximité",
			"9rib meni", "9rib liya",
			"قريب مني", "حولي", "قريب",
		},

		mapTriggers: []string{"map", "maps", "carte", "خريطة"},
		mapPhrases: []string{
			"on google maps", "in google", "google maps", "on the map", "on a map", "on map",
			"sur la carte", "sur une carte", "على الخريطة", "maps", "map", "carte", "خريطة",
		},

		fillers: []string{
			"give me", "show me", "find me", "i want", "i need", "can you", "please",
			"location of", "locations of", "where are", "where is", "help me find",
			"search for", "look for", "find", "get me", "provide me",
			"donne moi", "donne-moi", "montre moi", "montre-moi", "trouve moi", "trouve-moi",
			"je veux", "je cherche", "où sont", "où est", "aide moi", "aide-moi",
			"chercher", "localiser",
			"wrini", "3tini", "bghit", "n7ebb", "win kayen", "fin kayen",
			"في", "أين", "أعطني", "أريد", "ابحث عن", "دلني على",
		},

		articles:     []string{"the", "a", "an", "le", "la", "les", "un", "une", "des"},
		prepositions: []string{"in", "at", "of", "à", "a", "de", "du", "fi", "f", "في", "ب", "ف"},

		misspellings: []Misspelling{
			{Wrong: "hostpitals?", Correct: "hospitals"},
			{Wrong: "resturants?", Correct: "restaurants"},
			{Wrong: "farmacies?", Correct: "pharmacies"},
		},

		cities: []City{
			{Name: "Algiers", Aliases: []string{"Algiers", "Alger", "Dzayer", "الجزائر"}},
			{Name: "Oran", Aliases: []string{"Oran", "Wahran", "وهران"}},
			{Name: "Constantine", Aliases: []string{"Constantine", "Qsentina", "قسنطينة"}},
			{Name: "Annaba", Aliases: []string{"Annaba", "عنابة"}},
			{Name: "Setif", Aliases: []string{"Setif", "Sétif", "سطيف"}},
			{Name: "Batna", Aliases: []string{"Batna", "باتنة"}},
			{Name: "Blida", Aliases: []string{"Blida", "البليدة"}},
			{Name: "Tlemcen", Aliases: []string{"Tlemcen", "تلمسان"}},
			{Name: "Bejaia", Aliases: []string{"Bejaia", "Béjaïa", "Bgayet", "بجاية"}},
			{Name: "Biskra", Aliases: []string{"Biskra", "بسكرة"}},
			{Name: "Mascara", Aliases: []string{"Mascara", "معسكر"}},
			{Name: "Mostaganem", Aliases: []string{"Mostaganem", "مستغانم"}},
		},

		triggers: []Trigger{
			{Pattern: `(?i)wach t7ebb\s+([^.!?؟]+)`, Prefix: ""},
			{Pattern: `(?i)(?:^|[^\p{L}\p{N}_])t7ebb\s+([^.!?؟]+)`, Prefix: ""},
			{Pattern: `(?i)(?:^|[^\p{L}\p{N}_])kifach\s+([^.!?؟]+)`, Prefix: "Kifach "},
			{Pattern: `(?i)est-ce que tu veux\s+([^.!?؟]+)`, Prefix: "Est-ce que je peux "},
			{Pattern: `(?i)vous voulez\s+([^.!?؟]+)`, Prefix: "Je veux "},
			{Pattern: `(?i)ça t['’]int[ée]resse\s+([^.!?؟]+)`, Prefix: ""},
		},

		topics: []Topic{
			{Name: "food", Keywords: []string{"restaurant", "makla"}, Questions: []string{
				"Fin nlaga restaurants mlah 9rib meni?",
				"Chnouwa makla traditionnel li tensa7 biha?",
				"Kemma prix mte3 makla fi restaurants?",
			}},
			{Name: "weather", Keywords: []string{"météo", "meteo", "jaw"}, Questions: []string{
				"Chnouwa l'jaw ghoudwa?",
				"Wach bard wela skhoun had nhar?",
				"Nlabas eh fi had l'jaw?",
			}},
			{Name: "cities", Keywords: []string{"oran", "alger", "algiers", "wahran", "constantine", "annaba", "tlemcen"}, Questions: []string{
				"Wach andi blayess zouina fi had l'medina?",
				"Kifach nrouh l'centre ville?",
				"Chnouwa transport li y5dem mlah?",
			}},
			{Name: "cuisine", Keywords: []string{"couscous", "chorba"}, Questions: []string{
				"3allimni kifach ndir couscous?",
				"Wach andi recettes djazairiya o5ra?",
				"Chnouwa makla mte3 l'3id?",
			}},
			{Name: "jobs", Keywords: []string{"travail", "5edma"}, Questions: []string{
				"Kifach nlaga 5edma fi dzayer?",
				"A3tini tips bach nekteb CV?",
				"Kemma salaire fi had l'5edma?",
			}},
			{Name: "football", Keywords: []string{"football", "koura"}, Questions: []string{
				"Chnouwa a5bar l'équipe nationale?",
				"Wach match importante had semaine?",
				"Chkoun les joueurs li ya3jbouk?",
			}},
			{Name: "studies", Keywords: []string{"université", "universite", "études", "etudes"}, Questions: []string{
				"Wach andi universités mlah fi dzayer?",
				"Kifach nekteb dossier inscription?",
				"Chnouwa spécialités li tansa7 biha?",
			}},
			{Name: "transport", Keywords: []string{"transport", "metro"}, Questions: []string{
				"Kifach ya5dem metro fi alger?",
				"Wach andi bus li yrouh l'centre?",
				"Kemma prix transport?",
			}},
			{Name: "shopping", Keywords: []string{"shopping", "centre commercial"}, Questions: []string{
				"Fin nlaga centres commerciaux?",
				"Wach andi marques djazairiya mlah?",
				"Kifach nechri online fi dzayer?",
			}},
		},

		generic: []string{
			"Goulili akther 3la had l'haja?",
			"Chnouwa 7aja o5ra mumkine ta3mil?",
			"Kifach mumkine nesta3lek akther?",
		},
	}
}
