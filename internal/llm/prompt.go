package llm

const extractionPrompt = `You are extracting a weekly university class schedule from the image.
IMPORTANT:
- The timetable may be in Arabic (RTL). Day columns likely are: الأحد, الاثنين, الثلاثاء, الأربعاء, الخميس.
- Times might look like '8.0-9.50' (means 08:00-09:50). Convert to 24h HH:MM.
- Output JSON ONLY with this schema:
{ "classes": [ {
  "class_code": string,
  "class_name": string,
  "location": string,
  "days_of_week": ["Sun","Mon","Tue","Wed","Thu","Fri","Sat"],
  "start_time": "HH:MM",
  "end_time": "HH:MM"
} ] }
- If a class appears at MULTIPLE time slots, create a SEPARATE entry per time slot (same class_code allowed multiple times).
- Map Arabic day names to: Sun,Mon,Tue,Wed,Thu,Fri,Sat.
- If a slot spans several days (same time), include all those days in days_of_week.
- Do NOT include prose; JSON only.`

const systemPrompt = "You read timetable images. You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, markdown formatting, or commentary before or after the JSON."
