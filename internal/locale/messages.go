package locale

var translations = map[string]map[string]string{
	"cs": {
		"All-time":                 "Celkem",
		"Average Errors":           "Průměrné chyby",
		"Average Time":             "Průměrný čas",
		"Check":                    "Zkontrolovat",
		"Check All":                "Zkontrolovat vše",
		"Clean Sheet!":             "Bez chyby!",
		"Clean Sheets":             "Bez chyb",
		"Correct":                  "Správně",
		"Dashboard":                "Přehled",
		"Day":                      "Den",
		"Deadline: Off":            "Časový limit: vypnuto",
		"Difficulty":               "Obtížnost",
		"Errors":                   "Chyby",
		"errors":                   "chyb",
		"Last":                     "Naposledy",
		"Month":                    "Měsíc",
		"No data yet":              "Zatím žádná data",
		"No practice sessions yet": "Zatím žádné procvičování",
		"pages with zero errors":   "stránek bez chyby",
		"per page":                 "na stránku",
		"Period":                   "Období",
		"Practice":                 "Procvičování",
		"Ready to practice?":       "Můžeme počítat?",
		"s left":                   "s zbývá",
		"Save & quit":              "Uložit a skončit",
		"Save & restart":           "Uložit a znovu",
		"sessions":                 "stránek",
		"Start!":                   "Start!",
		"Time":                     "Čas",
		"Time's up!":               "Čas vypršel!",
		"To":                       "Do",
		"Try Again":                "Zkusit znovu",
		"Week":                     "Týden",
		"Year":                     "Rok",

		"Complete a practice page to see your stats!": "Dokonči stránku příkladů a uvidíš své statistiky!",
	},
	"he": {
		"All-time":                 "סך הכל",
		"Average Errors":           "ממוצע שגיאות",
		"Average Time":             "זמן ממוצע",
		"Check":                    "בדיקה",
		"Check All":                "בדוק הכל",
		"Clean Sheet!":             "בלי טעויות!",
		"Clean Sheets":             "דפים נקיים",
		"Correct":                  "נכון",
		"Dashboard":                "לוח בקרה",
		"Day":                      "יום",
		"Deadline: Off":            "מגבלת זמן: כבויה",
		"Difficulty":               "רמת קושי",
		"Errors":                   "שגיאות",
		"errors":                   "שגיאות",
		"Last":                     "אחרון",
		"Month":                    "חודש",
		"No data yet":              "אין נתונים עדיין",
		"No practice sessions yet": "אין עדיין תרגולים",
		"pages with zero errors":   "דפים ללא שגיאות",
		"per page":                 "לדף",
		"Period":                   "תקופה",
		"Practice":                 "תרגול",
		"Ready to practice?":       "מוכנים לתרגל?",
		"s left":                   "שניות נותרו",
		"Save & quit":              "שמור וצא",
		"Save & restart":           "שמור והתחל מחדש",
		"sessions":                 "תרגולים",
		"Start!":                   "התחל!",
		"Time":                     "זמן",
		"Time's up!":               "נגמר הזמן!",
		"To":                       "עד",
		"Try Again":                "נסה שוב",
		"Week":                     "שבוע",
		"Year":                     "שנה",

		"Complete a practice page to see your stats!": "סיימו דף תרגול כדי לראות סטטיסטיקה!",
	},
}
